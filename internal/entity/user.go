package entity

import "database/sql"

type User struct {
	Base

	Name          string `gorm:"index"`
	Discriminator string

	// PlusTier is the user's competitive ladder tier (1 is highest). Not
	// every user has one.
	PlusTier sql.NullInt64
}
