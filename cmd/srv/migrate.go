package main

import (
	"context"
	"fmt"

	"github.com/splatbuilds/backend/migration"
	"github.com/splatbuilds/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()

	ctx := xcontext.NewContext(
		context.Background(), nil, nil, s.configs, s.logger, s.db)

	if err := migration.Migrate(ctx); err != nil {
		return err
	}

	version := cctx.String("version")
	if version == "" {
		return nil
	}

	migrator, ok := migration.Migrators[version]
	if !ok {
		return fmt.Errorf("not found version %s", version)
	}

	return migrator(ctx)
}
