package cron

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/domain"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/pubsub"
	"github.com/sponsornet/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestDailyCommissionCronJob_Next(t *testing.T) {
	job := NewDailyCommissionCronJob(nil, "00:05", false)

	job.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.Equal(t, time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), job.Next())

	job.now = func() time.Time { return time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC) }
	require.Equal(t, time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC), job.Next())

	job.runAt = "invalid"
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), job.Next())
}

func TestDailyCommissionCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commissionRepo := repository.NewCommissionRepository()
	require.NoError(t, commissionRepo.CreateMany(ctx, []entity.CommissionObligation{{
		Base:        entity.Base{ID: "o1"},
		PurchaseID:  "p1",
		BuyerID:     testutil.User3.ID,
		SponsorID:   testutil.User2.ID,
		Level:       1,
		Percent:     decimal.NewFromInt(10),
		TotalAmount: decimal.NewFromInt(3650),
		DailyAmount: decimal.NewFromInt(10),
		TotalDays:   365,
		Status:      entity.CommissionActive,
		StartDate:   "2024-01-02",
		NextDueDate: "2024-01-02",
	}}))

	commissionDomain := domain.NewCommissionDomain(
		commissionRepo, repository.NewUserRepository(), nil, pubsub.NewNopPublisher())
	job := NewDailyCommissionCronJob(commissionDomain, "00:05", true)
	job.now = func() time.Time { return time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC) }

	job.Do(ctx)
	job.Do(ctx)

	o, err := commissionRepo.GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 1, o.DaysPaid)
	require.True(t, job.RunNow())
}
