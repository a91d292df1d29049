package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/common"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/dateutil"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/testutil"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/sponsornet/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

// at returns 10:00 UTC of the given date.
func at(date string) time.Time {
	t, err := dateutil.ParseDateKey(date)
	if err != nil {
		panic(err)
	}

	return t.Add(10 * time.Hour)
}

func newTestCommissionDomain(redisClient xredis.Client) *commissionDomain {
	return NewCommissionDomain(
		repository.NewCommissionRepository(),
		repository.NewUserRepository(),
		redisClient,
		testutil.NewRecordPublisher(),
	)
}

func newTestNftDomain(now time.Time) *nftDomain {
	d := NewNftDomain(
		repository.NewNftRepository(),
		repository.NewNftPurchaseRepository(),
		repository.NewCommissionRepository(),
		repository.NewUserRepository(),
		testutil.NewRecordPublisher(),
	)
	d.now = func() time.Time { return now }
	return d
}

func purchase(t *testing.T, ctx context.Context, userID, code string, now time.Time) {
	_, err := newTestNftDomain(now).PurchaseNft(
		xcontext.WithRequestUserID(ctx, userID), &model.PurchaseNftRequest{NftCode: code})
	require.NoError(t, err)
}

func getUser(t *testing.T, ctx context.Context, id string) *entity.User {
	user, err := repository.NewUserRepository().GetByIDUnscoped(ctx, id)
	require.NoError(t, err)
	return user
}

func createObligation(t *testing.T, ctx context.Context, id, sponsorID string, level int, total int64) {
	amount := decimal.NewFromInt(total)
	err := repository.NewCommissionRepository().CreateMany(ctx, []entity.CommissionObligation{{
		Base:        entity.Base{ID: id},
		PurchaseID:  "purchase_" + id,
		BuyerID:     testutil.User3.ID,
		SponsorID:   sponsorID,
		Level:       level,
		Percent:     decimal.NewFromInt(10),
		TotalAmount: amount,
		DailyAmount: amount.Div(decimal.NewFromInt(365)).Round(8),
		TotalDays:   365,
		Status:      entity.CommissionActive,
		StartDate:   "2024-01-02",
		NextDueDate: "2024-01-02",
	}})
	require.NoError(t, err)
}

func Test_commissionDomain_ProcessAt_NoDoublePayWithinDay(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	purchase(t, ctx, testutil.User3.ID, testutil.GoldNft.Code, at("2024-01-01"))

	d := newTestCommissionDomain(nil)

	// Nothing is due on the purchase day.
	summary, err := d.ProcessAt(ctx, at("2024-01-01"))
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalProcessed)

	summary, err = d.ProcessAt(ctx, at("2024-01-02"))
	require.NoError(t, err)
	require.Equal(t, 3, summary.TotalProcessed)
	require.Equal(t, "18", summary.TotalAmount.String())
	require.Equal(t, 0, summary.Errors)

	before := []*entity.User{
		getUser(t, ctx, testutil.User2.ID),
		getUser(t, ctx, testutil.User1.ID),
		getUser(t, ctx, testutil.Root.ID),
	}

	summary, err = d.ProcessAt(ctx, at("2024-01-02").Add(13*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalProcessed)
	require.True(t, summary.TotalAmount.IsZero())

	for _, u := range before {
		after := getUser(t, ctx, u.ID)
		require.Equal(t, u.WalletBalance.String(), after.WalletBalance.String())
		require.Equal(t, u.SponsorIncome.String(), after.SponsorIncome.String())
		require.Equal(t, u.LevelIncome.String(), after.LevelIncome.String())
	}
}

func Test_commissionDomain_ProcessAt_DailyShare(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	createObligation(t, ctx, "o1", testutil.User2.ID, 1, 3650)

	d := newTestCommissionDomain(nil)
	total := decimal.Zero
	start := at("2024-01-02")
	for i := 0; i < 365; i++ {
		summary, err := d.ProcessAt(ctx, start.AddDate(0, 0, i))
		require.NoError(t, err)
		require.Equal(t, 1, summary.TotalProcessed)
		require.Equal(t, "10", summary.TotalAmount.String())
		total = total.Add(summary.TotalAmount)

		if i < 364 {
			require.Equal(t, 0, summary.CompletedCommissions)
		} else {
			require.Equal(t, 1, summary.CompletedCommissions)
		}
	}

	require.Equal(t, "3650", total.String())

	o, err := repository.NewCommissionRepository().GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, entity.CommissionCompleted, o.Status)
	require.Equal(t, 365, o.DaysPaid)
	require.Equal(t, "3650", o.PaidAmount.String())

	require.Equal(t, "3650", getUser(t, ctx, testutil.User2.ID).SponsorIncome.String())

	// A completed obligation is never paid again.
	summary, err := d.ProcessAt(ctx, start.AddDate(0, 0, 365))
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalProcessed)
}

func Test_commissionDomain_ProcessAt_RemainderOnLastDay(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	createObligation(t, ctx, "o1", testutil.User2.ID, 1, 1000)

	d := newTestCommissionDomain(nil)
	total := decimal.Zero
	start := at("2024-01-02")
	for i := 0; i < 365; i++ {
		summary, err := d.ProcessAt(ctx, start.AddDate(0, 0, i))
		require.NoError(t, err)
		require.Equal(t, 1, summary.TotalProcessed)
		total = total.Add(summary.TotalAmount)
	}

	require.Equal(t, "1000", total.Round(8).String())
}

func Test_commissionDomain_ProcessAt_CatchUpMissedDays(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	createObligation(t, ctx, "o1", testutil.User2.ID, 1, 3650)

	d := newTestCommissionDomain(nil)

	// Three days are due on 2024-01-04.
	summary, err := d.ProcessAt(ctx, at("2024-01-04"))
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalProcessed)
	require.Equal(t, "30", summary.TotalAmount.String())

	o, err := repository.NewCommissionRepository().GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 3, o.DaysPaid)
	require.Equal(t, "2024-01-04", o.LastPaidDate)
	require.Equal(t, "2024-01-05", o.NextDueDate)

	payouts, err := repository.NewCommissionRepository().GetPayoutsByObligationID(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	require.Equal(t, 3, payouts[0].Installments)
}

func Test_commissionDomain_ProcessAt_LevelSplit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	purchase(t, ctx, testutil.User2.ID, testutil.GoldNft.Code, at("2024-01-01"))
	purchase(t, ctx, testutil.User3.ID, testutil.GoldNft.Code, at("2024-01-01"))

	_, err := newTestCommissionDomain(nil).ProcessAt(ctx, at("2024-01-02"))
	require.NoError(t, err)

	// user1 is level 1 of user2 and level 2 of user3.
	user1 := getUser(t, ctx, testutil.User1.ID)
	require.Equal(t, "10", user1.SponsorIncome.String())
	require.Equal(t, "5", user1.LevelIncome.String())

	// user2 is level 1 of user3 only.
	user2 := getUser(t, ctx, testutil.User2.ID)
	require.Equal(t, "10", user2.SponsorIncome.String())
	require.True(t, user2.LevelIncome.IsZero())

	// root is level 2 of user2 and level 3 of user3.
	root := getUser(t, ctx, testutil.Root.ID)
	require.True(t, root.SponsorIncome.IsZero())
	require.Equal(t, "8", root.LevelIncome.String())

	dashboard, err := NewUserDomain(repository.NewUserRepository()).GetDashboard(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID), &model.GetDashboardRequest{})
	require.NoError(t, err)
	require.Equal(t, "15", dashboard.TotalCommissionIncome.String())
	require.Equal(t,
		dashboard.SponsorIncome.Add(dashboard.LevelIncome).String(),
		dashboard.TotalCommissionIncome.String())
	require.Equal(t, "15", dashboard.WalletBalance.String())
}

func Test_commissionDomain_ProcessAt_PartialFailure(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base:      entity.Base{ID: "deleted_user"},
		Name:      "deleted_user",
		SponsorID: sql.NullString{Valid: true, String: testutil.Root.ID},
	}))
	require.NoError(t, xcontext.DB(ctx).Delete(&entity.User{}, "id=?", "deleted_user").Error)

	createObligation(t, ctx, "o1", testutil.Root.ID, 3, 365)
	createObligation(t, ctx, "o2", testutil.User1.ID, 2, 365)
	createObligation(t, ctx, "o3", "deleted_user", 1, 365)
	createObligation(t, ctx, "o4", testutil.User2.ID, 1, 365)
	createObligation(t, ctx, "o5", testutil.User3.ID, 1, 365)

	d := newTestCommissionDomain(nil)
	summary, err := d.ProcessAt(ctx, at("2024-01-02"))
	require.NoError(t, err)
	require.Equal(t, 4, summary.TotalProcessed)
	require.Equal(t, 1, summary.Errors)
	require.Equal(t, "4", summary.TotalAmount.String())

	// The failed claim was rolled back, so the next run retries it.
	o3, err := repository.NewCommissionRepository().GetByID(ctx, "o3")
	require.NoError(t, err)
	require.Equal(t, 0, o3.DaysPaid)
	require.Equal(t, "", o3.LastPaidDate)
	require.Equal(t, entity.CommissionActive, o3.Status)

	payouts, err := repository.NewCommissionRepository().GetPayoutsByObligationID(ctx, "o3")
	require.NoError(t, err)
	require.Empty(t, payouts)

	summary, err = d.ProcessAt(ctx, at("2024-01-02"))
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalProcessed)
	require.Equal(t, 1, summary.Errors)
}

func Test_commissionDomain_GetStatistics(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	purchase(t, ctx, testutil.User3.ID, testutil.GoldNft.Code, at("2024-01-01"))
	createObligation(t, ctx, "almost_done", testutil.User1.ID, 1, 3650)

	// Move the extra obligation to its last installment.
	err := xcontext.DB(ctx).Model(&entity.CommissionObligation{}).
		Where("id=?", "almost_done").
		Updates(map[string]any{
			"days_paid":     364,
			"paid_amount":   decimal.NewFromInt(3640),
			"next_due_date": "2024-01-02",
		}).Error
	require.NoError(t, err)

	d := newTestCommissionDomain(nil)
	d.now = func() time.Time { return at("2024-01-02") }

	resp, err := d.GetStatistics(ctx, &model.GetCommissionStatisticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.Statistics.TotalCommissions)
	require.Equal(t, int64(4), resp.Statistics.ActiveCommissions)
	require.Equal(t, int64(0), resp.Statistics.CompletedCommissions)
	require.Equal(t, "10220", resp.Statistics.TotalCommissionAmount.String())
	require.Equal(t, "3640", resp.Statistics.TotalPaidAmount.String())
	require.True(t, resp.Statistics.TodaysCommissions.IsZero())

	processed, err := d.ProcessDailyCommissions(ctx, &model.ProcessDailyCommissionsRequest{})
	require.NoError(t, err)
	require.Equal(t, 4, processed.Summary.TotalProcessed)
	require.Equal(t, 1, processed.Summary.CompletedCommissions)
	require.Equal(t, "28", processed.Summary.TotalAmount.String())

	resp, err = d.GetStatistics(ctx, &model.GetCommissionStatisticsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.Statistics.TotalCommissions)
	require.Equal(t, int64(3), resp.Statistics.ActiveCommissions)
	require.Equal(t, int64(1), resp.Statistics.CompletedCommissions)
	require.Equal(t, "3668", resp.Statistics.TotalPaidAmount.String())
	require.Equal(t, "28", resp.Statistics.TodaysCommissions.String())
}

func Test_commissionDomain_ProcessAt_Lock(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	createObligation(t, ctx, "o1", testutil.User2.ID, 1, 3650)

	locked := map[string]string{}
	redisClient := &testutil.MockRedisClient{
		SetNXFunc: func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
			if _, ok := locked[key]; ok {
				return false, nil
			}

			locked[key] = value
			return true, nil
		},
		CompareAndDelFunc: func(ctx context.Context, key, value string) (bool, error) {
			if locked[key] != value {
				return false, nil
			}

			delete(locked, key)
			return true, nil
		},
	}

	d := newTestCommissionDomain(redisClient)
	lockKey := common.RedisKeyDailyCommissionLock("2024-01-02")

	// Another run holds the lock.
	locked[lockKey] = "other"
	_, err := d.ProcessAt(ctx, at("2024-01-02"))
	require.True(t, errorx.Is(err, errorx.ProcessorBusy))

	delete(locked, lockKey)
	summary, err := d.ProcessAt(ctx, at("2024-01-02"))
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalProcessed)

	// The lock is released after the run.
	require.Empty(t, locked)
}

func Test_commissionDomain_ProcessAt_PublishSummary(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	createObligation(t, ctx, "o1", testutil.User2.ID, 1, 3650)

	publisher := testutil.NewRecordPublisher()
	d := NewCommissionDomain(
		repository.NewCommissionRepository(),
		repository.NewUserRepository(),
		nil,
		publisher,
	)

	_, err := d.ProcessAt(ctx, at("2024-01-02"))
	require.NoError(t, err)

	packs := publisher.Packs[common.TopicCommissionDailySettled]
	require.Len(t, packs, 1)
	require.Equal(t, "2024-01-02", string(packs[0].Key))
	require.JSONEq(t,
		`{"date":"2024-01-02","summary":{"totalProcessed":1,"totalAmount":"10","completedCommissions":0,"errors":0}}`,
		string(packs[0].Msg))
}

func Test_commissionDomain_GetMyCommissions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	purchase(t, ctx, testutil.User3.ID, testutil.SilverNft.Code, at("2024-01-01"))

	d := newTestCommissionDomain(nil)
	resp, err := d.GetMyCommissions(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID), &model.GetMyCommissionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Commissions, 1)
	require.Equal(t, 2, resp.Commissions[0].Level)
	require.Equal(t, "50", resp.Commissions[0].TotalAmount.String())
	require.Equal(t, "0.1369863", resp.Commissions[0].DailyAmount.String())
	require.Equal(t, "2024-01-02", resp.Commissions[0].NextDueDate)
}
