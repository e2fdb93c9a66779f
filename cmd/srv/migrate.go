package main

import (
	"github.com/urfave/cli/v2"

	"github.com/hungercard/backend/migration"
	"github.com/hungercard/backend/pkg/xcontext"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	s.ctx = xcontext.WithConfigs(s.ctx, *s.cfg)

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}
