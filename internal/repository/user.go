package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// IncomeField is a lifetime income counter of a user.
type IncomeField string

const (
	SponsorIncome IncomeField = "sponsor_income"
	LevelIncome   IncomeField = "level_income"
	HoldingIncome IncomeField = "holding_income"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDUnscoped(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	CountDownline(ctx context.Context, sponsorID string) (int64, error)
	CreditIncome(ctx context.Context, id string, field IncomeField, amount decimal.Decimal) error
	DebitWalletBalance(ctx context.Context, id string, amount decimal.Decimal) (bool, error)
	RefundWalletBalance(ctx context.Context, id string, amount decimal.Decimal) error
	IncreaseTotalWithdrawn(ctx context.Context, id string, amount decimal.Decimal) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByIDUnscoped also returns soft-deleted users. The sponsor tree keeps its
// shape after a member is deleted.
func (r *userRepository) GetByIDUnscoped(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Unscoped().Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) CountDownline(ctx context.Context, sponsorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).Where("sponsor_id=?", sponsorID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CreditIncome adds amount to both the income counter and the spendable
// wallet balance. It returns gorm.ErrRecordNotFound if the user does not exist
// or was deleted.
func (r *userRepository) CreditIncome(
	ctx context.Context, id string, field IncomeField, amount decimal.Decimal,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			string(field):    gorm.Expr(string(field)+" + CAST(? AS DECIMAL(20,8))", amount),
			"wallet_balance": gorm.Expr("wallet_balance + CAST(? AS DECIMAL(20,8))", amount),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DebitWalletBalance subtracts amount only if the balance covers it. It
// returns false if the balance is insufficient.
func (r *userRepository) DebitWalletBalance(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND wallet_balance >= CAST(? AS DECIMAL(20,8))", id, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - CAST(? AS DECIMAL(20,8))", amount))
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userRepository) RefundWalletBalance(ctx context.Context, id string, amount decimal.Decimal) error {
	tx := xcontext.DB(ctx).
		Unscoped().
		Model(&entity.User{}).
		Where("id=?", id).
		Update("wallet_balance", gorm.Expr("wallet_balance + CAST(? AS DECIMAL(20,8))", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) IncreaseTotalWithdrawn(ctx context.Context, id string, amount decimal.Decimal) error {
	return xcontext.DB(ctx).
		Unscoped().
		Model(&entity.User{}).
		Where("id=?", id).
		Update("total_withdrawn", gorm.Expr("total_withdrawn + CAST(? AS DECIMAL(20,8))", amount)).Error
}
