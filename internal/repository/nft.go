package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/pkg/xcontext"
)

type NftRepository interface {
	Create(ctx context.Context, data *entity.Nft) error
	GetByCode(ctx context.Context, code string) (*entity.Nft, error)
	GetList(ctx context.Context) ([]entity.Nft, error)
}

type nftRepository struct{}

func NewNftRepository() *nftRepository {
	return &nftRepository{}
}

func (r *nftRepository) Create(ctx context.Context, data *entity.Nft) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *nftRepository) GetByCode(ctx context.Context, code string) (*entity.Nft, error) {
	var result entity.Nft
	if err := xcontext.DB(ctx).Take(&result, "code=?", code).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nftRepository) GetList(ctx context.Context) ([]entity.Nft, error) {
	var result []entity.Nft
	if err := xcontext.DB(ctx).Order("price ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

type NftPurchaseRepository interface {
	Create(ctx context.Context, data *entity.NftPurchase) error
	GetByID(ctx context.Context, id string) (*entity.NftPurchase, error)
	Exists(ctx context.Context, userID, nftCode string) (bool, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.NftPurchase, error)
	MarkPaid(ctx context.Context, id string, amount decimal.Decimal, paidAt time.Time) (bool, error)
}

type nftPurchaseRepository struct{}

func NewNftPurchaseRepository() *nftPurchaseRepository {
	return &nftPurchaseRepository{}
}

func (r *nftPurchaseRepository) Create(ctx context.Context, data *entity.NftPurchase) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *nftPurchaseRepository) GetByID(ctx context.Context, id string) (*entity.NftPurchase, error) {
	var result entity.NftPurchase
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nftPurchaseRepository) Exists(ctx context.Context, userID, nftCode string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Unscoped().
		Model(&entity.NftPurchase{}).
		Where("user_id=? AND nft_code=?", userID, nftCode).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *nftPurchaseRepository) GetByUserID(ctx context.Context, userID string) ([]entity.NftPurchase, error) {
	var result []entity.NftPurchase
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// MarkPaid settles the holding wallet payout once. It returns false if the
// purchase was already paid.
func (r *nftPurchaseRepository) MarkPaid(
	ctx context.Context, id string, amount decimal.Decimal, paidAt time.Time,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.NftPurchase{}).
		Where("id=? AND payout_status=?", id, entity.PayoutPending).
		Updates(map[string]any{
			"payout_status": entity.PayoutPaid,
			"payout_amount": amount,
			"paid_at":       paidAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
