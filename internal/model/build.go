package model

import "time"

// BuildWeapon is one weapon of a build, carrying the aggregated ladder stats
// of that weapon when any exist.
type BuildWeapon struct {
	WeaponID int      `json:"weapon_id"`
	MinRank  *int     `json:"min_rank,omitempty"`
	MaxPower *float64 `json:"max_power,omitempty"`
}

type Build struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Modes         []string      `json:"modes,omitempty"`
	HeadGearID    *int64        `json:"head_gear_id,omitempty"`
	ClothesGearID *int64        `json:"clothes_gear_id,omitempty"`
	ShoesGearID   *int64        `json:"shoes_gear_id,omitempty"`
	Abilities     [3][4]string  `json:"abilities"`
	Weapons       []BuildWeapon `json:"weapons"`
	Private       bool          `json:"private"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Owner identity, only set on the weapon scoped listing.
	OwnerName          string `json:"owner_name,omitempty"`
	OwnerDiscriminator string `json:"owner_discriminator,omitempty"`
	OwnerPlusTier      *int   `json:"owner_plus_tier,omitempty"`
}

type CreateBuildRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Modes         []string     `json:"modes"`
	HeadGearID    *int64       `json:"head_gear_id"`
	ClothesGearID *int64       `json:"clothes_gear_id"`
	ShoesGearID   *int64       `json:"shoes_gear_id"`
	Abilities     [3][4]string `json:"abilities"`
	WeaponIDs     []int        `json:"weapon_ids"`
	Private       bool         `json:"private"`
}

type CreateBuildResponse struct {
	ID int64 `json:"id"`
}

type UpdateBuildRequest struct {
	ID int64 `json:"id"`
	CreateBuildRequest
}

type UpdateBuildResponse struct{}

type DeleteBuildRequest struct {
	ID int64 `json:"id"`
}

type DeleteBuildResponse struct{}

type GetBuildsRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GetBuildsResponse struct {
	Builds []Build `json:"builds"`
}

type CountBuildsRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type CountBuildsResponse struct {
	Count int64 `json:"count"`
}

type GetBuildsByWeaponRequest struct {
	WeaponID int `json:"weapon_id" form:"weapon_id"`
	Limit    int `json:"limit" form:"limit"`
}

type GetBuildsByWeaponResponse struct {
	Builds []Build `json:"builds"`
}
