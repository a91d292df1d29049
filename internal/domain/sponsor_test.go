package domain

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/config"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/testutil"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_sponsorChain(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	chain, err := sponsorChain(ctx, repository.NewUserRepository(), testutil.User3.ID, 10)
	require.NoError(t, err)
	require.Equal(t, []sponsorLevel{
		{SponsorID: testutil.User2.ID, Level: 1},
		{SponsorID: testutil.User1.ID, Level: 2},
		{SponsorID: testutil.Root.ID, Level: 3},
	}, chain)

	chain, err = sponsorChain(ctx, repository.NewUserRepository(), testutil.Root.ID, 10)
	require.NoError(t, err)
	require.Empty(t, chain)
}

func Test_sponsorChain_MaxDepth(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	// u0 <- u1 <- ... <- u11
	for i := 0; i < 12; i++ {
		user := &entity.User{
			Base: entity.Base{ID: fmt.Sprintf("u%d", i)},
			Name: fmt.Sprintf("u%d", i),
		}
		if i > 0 {
			user.SponsorID = sql.NullString{Valid: true, String: fmt.Sprintf("u%d", i-1)}
		}
		require.NoError(t, userRepo.Create(ctx, user))
	}

	chain, err := sponsorChain(ctx, userRepo, "u11", 10)
	require.NoError(t, err)
	require.Len(t, chain, 10)
	require.Equal(t, sponsorLevel{SponsorID: "u10", Level: 1}, chain[0])
	require.Equal(t, sponsorLevel{SponsorID: "u1", Level: 10}, chain[9])
}

func Test_sponsorChain_Cycle(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	require.NoError(t, userRepo.Create(ctx, &entity.User{Base: entity.Base{ID: "a"}, Name: "a"}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base:      entity.Base{ID: "b"},
		Name:      "b",
		SponsorID: sql.NullString{Valid: true, String: "a"},
	}))
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", "a").Update("sponsor_id", "b").Error)

	chain, err := sponsorChain(ctx, userRepo, "b", 10)
	require.NoError(t, err)
	require.Equal(t, []sponsorLevel{{SponsorID: "a", Level: 1}}, chain)
}

func Test_sponsorChain_DeletedSponsor(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	require.NoError(t, xcontext.DB(ctx).Delete(&entity.User{}, "id=?", testutil.User2.ID).Error)

	chain, err := sponsorChain(ctx, repository.NewUserRepository(), testutil.User3.ID, 10)
	require.NoError(t, err)
	require.Equal(t, []sponsorLevel{
		{SponsorID: testutil.User2.ID, Level: 1, Deleted: true},
		{SponsorID: testutil.User1.ID, Level: 2},
		{SponsorID: testutil.Root.ID, Level: 3},
	}, chain)
}

func Test_buildObligations(t *testing.T) {
	cfg := config.CommissionConfigs{
		LevelPercents: config.DefaultLevelPercents(),
		ScheduleDays:  365,
	}

	purchase := &entity.NftPurchase{
		Base:    entity.Base{ID: "p1"},
		UserID:  "buyer",
		NftCode: "GOLD",
		Price:   decimal.NewFromInt(36500),
	}

	chain := []sponsorLevel{}
	for i := 1; i <= 10; i++ {
		chain = append(chain, sponsorLevel{SponsorID: fmt.Sprintf("s%d", i), Level: i})
	}
	chain[3].Deleted = true

	obligations, err := buildObligations(cfg, purchase, chain, "2024-12-31")
	require.NoError(t, err)
	require.Len(t, obligations, 9)

	expected := map[int]string{1: "3650", 2: "1825", 3: "1095", 5: "365", 6: "182.5", 10: "182.5"}
	for _, o := range obligations {
		require.NotEqual(t, 4, o.Level)
		require.Equal(t, "p1", o.PurchaseID)
		require.Equal(t, "buyer", o.BuyerID)
		require.Equal(t, fmt.Sprintf("s%d", o.Level), o.SponsorID)
		require.Equal(t, entity.CommissionActive, o.Status)
		require.Equal(t, 365, o.TotalDays)
		require.Equal(t, "2025-01-01", o.StartDate)
		require.Equal(t, "2025-01-01", o.NextDueDate)
		require.Equal(t, o.TotalAmount.Div(decimal.NewFromInt(365)).Round(8).String(), o.DailyAmount.String())

		if amount, ok := expected[o.Level]; ok {
			require.Equal(t, amount, o.TotalAmount.String())
		}
	}
}
