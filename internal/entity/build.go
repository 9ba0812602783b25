package entity

import (
	"database/sql"
	"time"

	"github.com/splatbuilds/backend/pkg/enum"
)

type GearType string

var (
	GearHead    = enum.New(GearType("HEAD"))
	GearClothes = enum.New(GearType("CLOTHES"))
	GearShoes   = enum.New(GearType("SHOES"))
)

// GearOrder fixes which ability matrix row belongs to which gear slot.
var GearOrder = [3]GearType{GearHead, GearClothes, GearShoes}

func GearRank(g GearType) int {
	for i, gear := range GearOrder {
		if gear == g {
			return i
		}
	}
	return len(GearOrder)
}

type Build struct {
	// ID is generated by the snowflake node, never by the database.
	ID int64 `gorm:"primarykey;autoIncrement:false"`

	UserID string `gorm:"index;not null"`
	User   User   `gorm:"foreignKey:UserID"`

	Title       string `gorm:"not null"`
	Description sql.NullString
	Modes       ModeSet `gorm:"type:varchar(32)"`

	HeadGearID    sql.NullInt64
	ClothesGearID sql.NullInt64
	ShoesGearID   sql.NullInt64

	Private   bool
	UpdatedAt time.Time

	Weapons   []BuildWeapon  `gorm:"foreignKey:BuildID;constraint:OnDelete:CASCADE"`
	Abilities []BuildAbility `gorm:"foreignKey:BuildID;constraint:OnDelete:CASCADE"`
}

// BuildWeapon associates a build with one of the weapons it is made for.
// A build has at least one; duplicates are allowed and kept.
type BuildWeapon struct {
	ID       int64 `gorm:"primarykey"`
	BuildID  int64 `gorm:"index;not null"`
	WeaponID int   `gorm:"index;not null"`
}

// BuildAbility is one cell of a build's ability matrix in normalized form.
// Every build owns exactly one row per (gear type, slot) pair.
type BuildAbility struct {
	ID       int64    `gorm:"primarykey"`
	BuildID  int64    `gorm:"uniqueIndex:idx_build_gear_slot;not null"`
	GearType GearType `gorm:"uniqueIndex:idx_build_gear_slot;not null"`
	Slot     int      `gorm:"uniqueIndex:idx_build_gear_slot;not null"`
	Ability  string   `gorm:"not null"`
}
