package model

// AccessToken is the object carried inside the JWT access token.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
