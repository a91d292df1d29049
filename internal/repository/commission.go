package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ClaimCommissionParams struct {
	ID string

	// DaysPaid is the progress read before claiming. The claim fails if
	// another run advanced the obligation in the meantime.
	DaysPaid int

	Installments int
	Amount       decimal.Decimal
	Today        string
	NextDueDate  string
	Status       entity.CommissionStatus
}

type CommissionStatistic struct {
	Total       int64
	Active      int64
	Completed   int64
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	TodayAmount decimal.Decimal
}

type CommissionRepository interface {
	CreateMany(ctx context.Context, data []entity.CommissionObligation) error
	GetByID(ctx context.Context, id string) (*entity.CommissionObligation, error)
	GetDue(ctx context.Context, today string) ([]entity.CommissionObligation, error)
	GetBySponsorID(ctx context.Context, sponsorID string) ([]entity.CommissionObligation, error)
	GetByPurchaseID(ctx context.Context, purchaseID string) ([]entity.CommissionObligation, error)
	Claim(ctx context.Context, params ClaimCommissionParams) (bool, error)
	CreatePayout(ctx context.Context, data *entity.CommissionPayout) error
	GetPayoutsByObligationID(ctx context.Context, obligationID string) ([]entity.CommissionPayout, error)
	Statistic(ctx context.Context, today string) (*CommissionStatistic, error)
}

type commissionRepository struct{}

func NewCommissionRepository() *commissionRepository {
	return &commissionRepository{}
}

func (r *commissionRepository) CreateMany(ctx context.Context, data []entity.CommissionObligation) error {
	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(&data).Error
}

func (r *commissionRepository) GetByID(ctx context.Context, id string) (*entity.CommissionObligation, error) {
	var result entity.CommissionObligation
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commissionRepository) GetDue(ctx context.Context, today string) ([]entity.CommissionObligation, error) {
	var result []entity.CommissionObligation
	err := xcontext.DB(ctx).
		Where("status=? AND next_due_date<=?", entity.CommissionActive, today).
		Order("next_due_date ASC, created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commissionRepository) GetBySponsorID(
	ctx context.Context, sponsorID string,
) ([]entity.CommissionObligation, error) {
	var result []entity.CommissionObligation
	err := xcontext.DB(ctx).
		Where("sponsor_id=?", sponsorID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commissionRepository) GetByPurchaseID(
	ctx context.Context, purchaseID string,
) ([]entity.CommissionObligation, error) {
	var result []entity.CommissionObligation
	err := xcontext.DB(ctx).
		Where("purchase_id=?", purchaseID).
		Order("level ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Claim advances an active obligation by the given installments. It returns
// false without error if the obligation was already paid today or its
// progress changed since it was read.
func (r *commissionRepository) Claim(ctx context.Context, params ClaimCommissionParams) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.CommissionObligation{}).
		Where("id=? AND status=? AND days_paid=?", params.ID, entity.CommissionActive, params.DaysPaid).
		Where("(last_paid_date='' OR last_paid_date<?)", params.Today).
		Updates(map[string]any{
			"days_paid":      gorm.Expr("days_paid + ?", params.Installments),
			"paid_amount":    gorm.Expr("paid_amount + CAST(? AS DECIMAL(20,8))", params.Amount),
			"last_paid_date": params.Today,
			"next_due_date":  params.NextDueDate,
			"status":         params.Status,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *commissionRepository) CreatePayout(ctx context.Context, data *entity.CommissionPayout) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commissionRepository) GetPayoutsByObligationID(
	ctx context.Context, obligationID string,
) ([]entity.CommissionPayout, error) {
	var result []entity.CommissionPayout
	err := xcontext.DB(ctx).
		Where("obligation_id=?", obligationID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commissionRepository) Statistic(ctx context.Context, today string) (*CommissionStatistic, error) {
	result := CommissionStatistic{}
	db := xcontext.DB(ctx)

	if err := db.Model(&entity.CommissionObligation{}).Count(&result.Total).Error; err != nil {
		return nil, err
	}

	err := db.Model(&entity.CommissionObligation{}).
		Where("status=?", entity.CommissionActive).
		Count(&result.Active).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.CommissionObligation{}).
		Where("status=?", entity.CommissionCompleted).
		Count(&result.Completed).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.CommissionObligation{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&result.TotalAmount)
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.CommissionObligation{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Row().Scan(&result.PaidAmount)
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.CommissionPayout{}).
		Where("pay_date=?", today).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&result.TodayAmount)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
