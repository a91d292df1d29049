package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sponsornet/backend/internal/domain/cron"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadService()
	defer s.close()

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewDailyCommissionCronJob(
		s.commissionDomain,
		xcontext.Configs(s.ctx).Commission.RunAt,
		true,
	))

	xcontext.Logger(s.ctx).Infof("Starting cron jobs")
	cronJobManager.Start(ctx)
	xcontext.Logger(s.ctx).Infof("Cron jobs stopped")
	return nil
}
