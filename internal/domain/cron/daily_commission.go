package cron

import (
	"context"
	"time"

	"github.com/sponsornet/backend/internal/domain"
	"github.com/sponsornet/backend/pkg/dateutil"
	"github.com/sponsornet/backend/pkg/xcontext"
)

type DailyCommissionCronJob struct {
	commissionDomain domain.CommissionDomain
	runAt            string
	runNow           bool
	now              func() time.Time
}

// NewDailyCommissionCronJob runs the daily commission processor every day at
// runAt ("15:04", UTC). If runNow is set, the first run starts immediately to
// catch up the days missed while the process was down.
func NewDailyCommissionCronJob(
	commissionDomain domain.CommissionDomain,
	runAt string,
	runNow bool,
) *DailyCommissionCronJob {
	return &DailyCommissionCronJob{
		commissionDomain: commissionDomain,
		runAt:            runAt,
		runNow:           runNow,
		now:              time.Now,
	}
}

func (job *DailyCommissionCronJob) Do(ctx context.Context) {
	summary, err := job.commissionDomain.ProcessAt(ctx, job.now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot process daily commissions: %v", err)
		return
	}

	if summary.Errors > 0 {
		xcontext.Logger(ctx).Warnf("Daily commissions finished with %d errors", summary.Errors)
	}
}

func (job *DailyCommissionCronJob) RunNow() bool {
	return job.runNow
}

func (job *DailyCommissionCronJob) Next() time.Time {
	next, err := dateutil.NextTimeOfDay(job.now(), job.runAt)
	if err != nil {
		// The time of day is validated when the job is created by the cron
		// command, fall back to the next midnight.
		return dateutil.NextDay(job.now())
	}

	return next
}
