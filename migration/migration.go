package migration

import (
	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

// Migrate brings the schema up to date for every entity of the service.
func Migrate(ctx xcontext.Context) error {
	return ctx.DB().AutoMigrate(
		&entity.User{},
		&entity.Build{},
		&entity.BuildWeapon{},
		&entity.BuildAbility{},
		&entity.XRankPlacement{},
	)
}

// Migrators maps a version to a one-off data migration, run explicitly
// through the migrate command after the schema migration.
var Migrators = map[string]func(xcontext.Context) error{
	"0001": migrate0001,
}
