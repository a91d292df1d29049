package repository

import (
	"context"

	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/pkg/xcontext"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, data *entity.Withdrawal) error
	GetByID(ctx context.Context, id string) (*entity.Withdrawal, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Withdrawal, error)
	GetList(ctx context.Context, status entity.WithdrawalStatus, offset, limit int) ([]entity.Withdrawal, error)
	UpdateStatus(
		ctx context.Context,
		id string,
		from []entity.WithdrawalStatus,
		to entity.WithdrawalStatus,
		fields map[string]any,
	) (bool, error)
}

type withdrawalRepository struct{}

func NewWithdrawalRepository() *withdrawalRepository {
	return &withdrawalRepository{}
}

func (r *withdrawalRepository) Create(ctx context.Context, data *entity.Withdrawal) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*entity.Withdrawal, error) {
	var result entity.Withdrawal
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *withdrawalRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Withdrawal, error) {
	var result []entity.Withdrawal
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetList returns withdrawals of all users. An empty status matches any
// status.
func (r *withdrawalRepository) GetList(
	ctx context.Context, status entity.WithdrawalStatus, offset, limit int,
) ([]entity.Withdrawal, error) {
	var result []entity.Withdrawal
	tx := xcontext.DB(ctx).Order("created_at ASC").Offset(offset).Limit(limit)
	if status != "" {
		tx = tx.Where("status=?", status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateStatus moves a withdrawal to status to only if its current status is
// one of from. It returns false if the withdrawal is in another status.
func (r *withdrawalRepository) UpdateStatus(
	ctx context.Context,
	id string,
	from []entity.WithdrawalStatus,
	to entity.WithdrawalStatus,
	fields map[string]any,
) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Withdrawal{}).
		Where("id=? AND status IN (?)", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
