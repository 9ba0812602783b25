package entity

import "time"

// XRankPlacement is one top-500 ladder result. Rows are written by the
// placement importer; the build read path only aggregates them per weapon.
type XRankPlacement struct {
	ID         int64 `gorm:"primarykey"`
	PlayerName string
	WeaponID   int      `gorm:"index;not null"`
	Mode       GameMode `gorm:"type:varchar(4)"`

	// Placement is the rank reached on the ladder, 1 is best.
	Placement int `gorm:"column:placement;not null"`

	// Power is the ladder power at that placement.
	Power float64 `gorm:"not null"`

	RecordedAt time.Time
}
