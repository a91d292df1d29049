package main

import (
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	xcontext.Logger(s.ctx).Infof("Migrated database %s", xcontext.Configs(s.ctx).Database.Database)
	return nil
}
