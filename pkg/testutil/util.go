package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splatbuilds/backend/config"
	"github.com/splatbuilds/backend/migration"
	"github.com/splatbuilds/backend/pkg/logger"
	"github.com/splatbuilds/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "secret",
			Name:   "auth_session",
		},
	}
}

// MockContext creates a context over a fresh in-memory database with the
// schema migrated and fixture users inserted.
func MockContext() xcontext.Context {
	// Every pooled connection must see the same in-memory database, hence
	// the named dsn with a shared cache. Foreign keys are off by default in
	// sqlite, but the delete path depends on cascading them.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	ctx := xcontext.NewContext(
		context.Background(), nil, nil,
		MockConfigs(), logger.NewLogger(logger.SILENCE), db,
	)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	InsertUsers(ctx)
	return ctx
}

func MockContextWithUserID(userID string) xcontext.Context {
	ctx := MockContext()
	xcontext.SetRequestUserID(ctx, userID)
	return ctx
}
