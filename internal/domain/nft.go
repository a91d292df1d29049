package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sponsornet/backend/internal/common"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/dateutil"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/pubsub"
	"github.com/sponsornet/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NftDomain interface {
	CreateNft(context.Context, *model.CreateNftRequest) (*model.CreateNftResponse, error)
	GetNfts(context.Context, *model.GetNftsRequest) (*model.GetNftsResponse, error)
	PurchaseNft(context.Context, *model.PurchaseNftRequest) (*model.PurchaseNftResponse, error)
	GetMyPurchases(context.Context, *model.GetMyPurchasesRequest) (*model.GetMyPurchasesResponse, error)
	PayHoldingWallet(context.Context, *model.PayHoldingWalletRequest) (*model.PayHoldingWalletResponse, error)
}

type nftDomain struct {
	nftRepo         repository.NftRepository
	nftPurchaseRepo repository.NftPurchaseRepository
	commissionRepo  repository.CommissionRepository
	userRepo        repository.UserRepository
	publisher       pubsub.Publisher
	now             func() time.Time
}

func NewNftDomain(
	nftRepo repository.NftRepository,
	nftPurchaseRepo repository.NftPurchaseRepository,
	commissionRepo repository.CommissionRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *nftDomain {
	return &nftDomain{
		nftRepo:         nftRepo,
		nftPurchaseRepo: nftPurchaseRepo,
		commissionRepo:  commissionRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (d *nftDomain) CreateNft(
	ctx context.Context, req *model.CreateNftRequest,
) (*model.CreateNftResponse, error) {
	if req.Code == "" || req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Code and name are required")
	}

	if !req.Price.IsPositive() {
		return nil, errorx.New(errorx.BadRequest, "Price must be positive")
	}

	_, err := d.nftRepo.GetByCode(ctx, req.Code)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Nft code %s already exists", req.Code)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get nft by code: %v", err)
		return nil, errorx.Unknown
	}

	nft := &entity.Nft{
		Base:  entity.Base{ID: uuid.NewString()},
		Code:  req.Code,
		Name:  req.Name,
		Price: req.Price,
	}
	if err := d.nftRepo.Create(ctx, nft); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create nft: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateNftResponse{ID: nft.ID}, nil
}

func (d *nftDomain) GetNfts(
	ctx context.Context, req *model.GetNftsRequest,
) (*model.GetNftsResponse, error) {
	nfts, err := d.nftRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nft list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Nft{}
	for _, nft := range nfts {
		result = append(result, convertNft(&nft))
	}

	return &model.GetNftsResponse{Nfts: result}, nil
}

func (d *nftDomain) PurchaseNft(
	ctx context.Context, req *model.PurchaseNftRequest,
) (*model.PurchaseNftResponse, error) {
	if req.NftCode == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty nft code")
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	nft, err := d.nftRepo.GetByCode(ctx, req.NftCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found nft")
		}

		xcontext.Logger(ctx).Errorf("Cannot get nft: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now()
	cfg := xcontext.Configs(ctx).Commission

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	exists, err := d.nftPurchaseRepo.Exists(ctx, userID, nft.Code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check purchase existence: %v", err)
		return nil, errorx.Unknown
	}

	if exists {
		return nil, errorx.New(errorx.AlreadyExists, "User already purchased this nft")
	}

	purchase := &entity.NftPurchase{
		Base:         entity.Base{ID: uuid.NewString()},
		UserID:       userID,
		NftCode:      nft.Code,
		Price:        nft.Price,
		PayoutStatus: entity.PayoutPending,
	}
	if err := d.nftPurchaseRepo.Create(ctx, purchase); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create nft purchase: %v", err)
		return nil, errorx.Unknown
	}

	chain, err := sponsorChain(ctx, d.userRepo, userID, cfg.MaxLevel())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot walk sponsor chain: %v", err)
		return nil, errorx.Unknown
	}

	obligations, err := buildObligations(cfg, purchase, chain, dateutil.DateKey(now))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot build commission schedule: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commissionRepo.CreateMany(ctx, obligations); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create commission schedule: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	pack, err := pubsub.NewPack(purchase.ID, model.NftPurchasedEvent{
		PurchaseID:  purchase.ID,
		UserID:      userID,
		NftCode:     nft.Code,
		Price:       nft.Price,
		Commissions: len(obligations),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create nft purchased pack: %v", err)
	} else if err := d.publisher.Publish(ctx, common.TopicNftPurchased, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish nft purchased event: %v", err)
	}

	commissions := []model.CommissionObligation{}
	for _, o := range obligations {
		commissions = append(commissions, convertCommissionObligation(&o))
	}

	return &model.PurchaseNftResponse{
		Purchase:    convertNftPurchase(purchase),
		Commissions: commissions,
	}, nil
}

func (d *nftDomain) GetMyPurchases(
	ctx context.Context, req *model.GetMyPurchasesRequest,
) (*model.GetMyPurchasesResponse, error) {
	purchases, err := d.nftPurchaseRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get purchases of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.NftPurchase{}
	for _, p := range purchases {
		result = append(result, convertNftPurchase(&p))
	}

	return &model.GetMyPurchasesResponse{Purchases: result}, nil
}

func (d *nftDomain) PayHoldingWallet(
	ctx context.Context, req *model.PayHoldingWalletRequest,
) (*model.PayHoldingWalletResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	purchase, err := d.nftPurchaseRepo.GetByID(ctx, req.PurchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found purchase")
		}

		xcontext.Logger(ctx).Errorf("Cannot get purchase: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ok, err := d.nftPurchaseRepo.MarkPaid(ctx, purchase.ID, req.Amount, d.now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark purchase as paid: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Holding wallet of this purchase was already paid")
	}

	err = d.userRepo.CreditIncome(ctx, purchase.UserID, repository.HoldingIncome, req.Amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found owner of purchase")
		}

		xcontext.Logger(ctx).Errorf("Cannot credit holding income: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PayHoldingWalletResponse{}, nil
}
