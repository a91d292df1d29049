package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/common"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/testutil"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_nftDomain_CreateNft(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestNftDomain(at("2024-01-01"))

	_, err := d.CreateNft(ctx, &model.CreateNftRequest{Code: "BRONZE", Name: "Bronze", Price: decimal.Zero})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.CreateNft(ctx, &model.CreateNftRequest{
		Code: testutil.GoldNft.Code, Name: "Gold", Price: decimal.NewFromInt(1)})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	resp, err := d.CreateNft(ctx, &model.CreateNftRequest{
		Code: "BRONZE", Name: "Bronze", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	nfts, err := d.GetNfts(ctx, &model.GetNftsRequest{})
	require.NoError(t, err)
	require.Len(t, nfts.Nfts, 3)
	require.Equal(t, "BRONZE", nfts.Nfts[0].Code)
}

func Test_nftDomain_PurchaseNft(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := testutil.NewRecordPublisher()
	d := newTestNftDomain(at("2024-01-01"))
	d.publisher = publisher

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	resp, err := d.PurchaseNft(userCtx, &model.PurchaseNftRequest{NftCode: testutil.GoldNft.Code})
	require.NoError(t, err)
	require.Equal(t, "36500", resp.Purchase.Price.String())
	require.Equal(t, string(entity.PayoutPending), resp.Purchase.PayoutStatus)
	require.Len(t, resp.Commissions, 3)

	obligations, err := repository.NewCommissionRepository().GetByPurchaseID(ctx, resp.Purchase.ID)
	require.NoError(t, err)
	require.Len(t, obligations, 3)
	require.Equal(t, testutil.User2.ID, obligations[0].SponsorID)
	require.Equal(t, "10", obligations[0].DailyAmount.String())

	require.Len(t, publisher.Packs[common.TopicNftPurchased], 1)

	// The same nft cannot be purchased twice.
	_, err = d.PurchaseNft(userCtx, &model.PurchaseNftRequest{NftCode: testutil.GoldNft.Code})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	obligations, err = repository.NewCommissionRepository().GetBySponsorID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Len(t, obligations, 1)

	// But another one can.
	_, err = d.PurchaseNft(userCtx, &model.PurchaseNftRequest{NftCode: testutil.SilverNft.Code})
	require.NoError(t, err)

	purchases, err := d.GetMyPurchases(userCtx, &model.GetMyPurchasesRequest{})
	require.NoError(t, err)
	require.Len(t, purchases.Purchases, 2)

	_, err = d.PurchaseNft(userCtx, &model.PurchaseNftRequest{NftCode: "UNKNOWN"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_nftDomain_PurchaseNft_Root(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestNftDomain(at("2024-01-01"))

	resp, err := d.PurchaseNft(
		xcontext.WithRequestUserID(ctx, testutil.Root.ID),
		&model.PurchaseNftRequest{NftCode: testutil.GoldNft.Code})
	require.NoError(t, err)
	require.Empty(t, resp.Commissions)
}

func Test_nftDomain_PayHoldingWallet(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestNftDomain(at("2024-01-01"))

	resp, err := d.PurchaseNft(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.PurchaseNftRequest{NftCode: testutil.SilverNft.Code})
	require.NoError(t, err)

	req := &model.PayHoldingWalletRequest{PurchaseID: resp.Purchase.ID, Amount: decimal.NewFromInt(120)}
	_, err = d.PayHoldingWallet(ctx, req)
	require.NoError(t, err)

	_, err = d.PayHoldingWallet(ctx, req)
	require.True(t, errorx.Is(err, errorx.BadRequest))

	user := getUser(t, ctx, testutil.User1.ID)
	require.Equal(t, "120", user.HoldingIncome.String())
	require.Equal(t, "120", user.WalletBalance.String())

	purchase, err := repository.NewNftPurchaseRepository().GetByID(ctx, resp.Purchase.ID)
	require.NoError(t, err)
	require.Equal(t, entity.PayoutPaid, purchase.PayoutStatus)
	require.Equal(t, "120", purchase.PayoutAmount.String())
	require.True(t, purchase.PaidAt.Valid)

	_, err = d.PayHoldingWallet(ctx, &model.PayHoldingWalletRequest{PurchaseID: "unknown", Amount: decimal.NewFromInt(1)})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
