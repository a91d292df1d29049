package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/common"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/enum"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/ethutil"
	"github.com/sponsornet/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WithdrawalDomain interface {
	Create(context.Context, *model.CreateWithdrawalRequest) (*model.CreateWithdrawalResponse, error)
	Cancel(context.Context, *model.CancelWithdrawalRequest) (*model.CancelWithdrawalResponse, error)
	GetMy(context.Context, *model.GetMyWithdrawalsRequest) (*model.GetMyWithdrawalsResponse, error)
	GetList(context.Context, *model.GetWithdrawalsRequest) (*model.GetWithdrawalsResponse, error)
	Process(context.Context, *model.ProcessWithdrawalRequest) (*model.ProcessWithdrawalResponse, error)
	Complete(context.Context, *model.CompleteWithdrawalRequest) (*model.CompleteWithdrawalResponse, error)
	Reject(context.Context, *model.RejectWithdrawalRequest) (*model.RejectWithdrawalResponse, error)
}

type withdrawalDomain struct {
	withdrawalRepo repository.WithdrawalRepository
	userRepo       repository.UserRepository
	now            func() time.Time
}

func NewWithdrawalDomain(
	withdrawalRepo repository.WithdrawalRepository,
	userRepo repository.UserRepository,
) *withdrawalDomain {
	return &withdrawalDomain{
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
		now:            time.Now,
	}
}

func (d *withdrawalDomain) Create(
	ctx context.Context, req *model.CreateWithdrawalRequest,
) (*model.CreateWithdrawalResponse, error) {
	cfg := xcontext.Configs(ctx).Withdrawal
	if !req.Amount.IsPositive() {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	if req.Amount.LessThan(cfg.MinAmount) {
		return nil, errorx.New(errorx.BadRequest, "Amount must be at least %s", cfg.MinAmount)
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !user.WalletAddress.Valid || user.WalletAddress.String == "" {
		return nil, errorx.New(errorx.BadRequest, "User has not set up a wallet address")
	}

	fee := req.Amount.Mul(cfg.FeePercent).Div(decimal.NewFromInt(100)).Round(dailyAmountPlaces)
	withdrawal := &entity.Withdrawal{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        user.ID,
		WalletAddress: user.WalletAddress.String,
		Status:        entity.WithdrawalPending,
		GrossAmount:   req.Amount,
		FeeAmount:     fee,
		NetAmount:     req.Amount.Sub(fee),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ok, err := d.userRepo.DebitWalletBalance(ctx, user.ID, req.Amount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot debit wallet balance: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.InsufficientBalance, "Insufficient balance")
	}

	if err := d.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateWithdrawalResponse{Withdrawal: convertWithdrawal(withdrawal)}, nil
}

func (d *withdrawalDomain) Cancel(
	ctx context.Context, req *model.CancelWithdrawalRequest,
) (*model.CancelWithdrawalResponse, error) {
	withdrawal, err := d.getWithdrawal(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if withdrawal.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only owner can cancel the withdrawal")
	}

	err = d.transit(ctx, withdrawal, []entity.WithdrawalStatus{entity.WithdrawalPending},
		entity.WithdrawalCancelled, nil, true)
	if err != nil {
		return nil, err
	}

	return &model.CancelWithdrawalResponse{}, nil
}

func (d *withdrawalDomain) GetMy(
	ctx context.Context, req *model.GetMyWithdrawalsRequest,
) (*model.GetMyWithdrawalsResponse, error) {
	withdrawals, err := d.withdrawalRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get withdrawals of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Withdrawal{}
	for _, w := range withdrawals {
		result = append(result, convertWithdrawal(&w))
	}

	return &model.GetMyWithdrawalsResponse{Withdrawals: result}, nil
}

func (d *withdrawalDomain) GetList(
	ctx context.Context, req *model.GetWithdrawalsRequest,
) (*model.GetWithdrawalsResponse, error) {
	var status entity.WithdrawalStatus
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.WithdrawalStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid withdrawal status: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
	}

	offset, limit, err := common.Pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	withdrawals, err := d.withdrawalRepo.GetList(ctx, status, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get withdrawal list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Withdrawal{}
	for _, w := range withdrawals {
		result = append(result, convertWithdrawal(&w))
	}

	return &model.GetWithdrawalsResponse{Withdrawals: result}, nil
}

func (d *withdrawalDomain) Process(
	ctx context.Context, req *model.ProcessWithdrawalRequest,
) (*model.ProcessWithdrawalResponse, error) {
	withdrawal, err := d.getWithdrawal(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	err = d.transit(ctx, withdrawal, []entity.WithdrawalStatus{entity.WithdrawalPending},
		entity.WithdrawalProcessing, map[string]any{"processed_at": d.now()}, false)
	if err != nil {
		return nil, err
	}

	return &model.ProcessWithdrawalResponse{}, nil
}

func (d *withdrawalDomain) Complete(
	ctx context.Context, req *model.CompleteWithdrawalRequest,
) (*model.CompleteWithdrawalResponse, error) {
	if !ethutil.IsTxHash(req.TxHash) {
		return nil, errorx.New(errorx.BadRequest, "Invalid transaction hash")
	}

	withdrawal, err := d.getWithdrawal(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.transit(ctx, withdrawal, []entity.WithdrawalStatus{entity.WithdrawalProcessing},
		entity.WithdrawalCompleted, map[string]any{
			"tx_hash":      sql.NullString{Valid: true, String: req.TxHash},
			"completed_at": d.now(),
		}, false)
	if err != nil {
		return nil, err
	}

	if err := d.userRepo.IncreaseTotalWithdrawn(ctx, withdrawal.UserID, withdrawal.GrossAmount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase total withdrawn: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CompleteWithdrawalResponse{}, nil
}

func (d *withdrawalDomain) Reject(
	ctx context.Context, req *model.RejectWithdrawalRequest,
) (*model.RejectWithdrawalResponse, error) {
	withdrawal, err := d.getWithdrawal(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	err = d.transit(ctx, withdrawal,
		[]entity.WithdrawalStatus{entity.WithdrawalPending, entity.WithdrawalProcessing},
		entity.WithdrawalRejected, map[string]any{"admin_note": req.Note}, true)
	if err != nil {
		return nil, err
	}

	return &model.RejectWithdrawalResponse{}, nil
}

func (d *withdrawalDomain) getWithdrawal(ctx context.Context, id string) (*entity.Withdrawal, error) {
	withdrawal, err := d.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found withdrawal")
		}

		xcontext.Logger(ctx).Errorf("Cannot get withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	return withdrawal, nil
}

// transit moves the withdrawal from one of the from statuses to status to. A
// refund returns the gross amount to the owner in the same transaction.
func (d *withdrawalDomain) transit(
	ctx context.Context,
	withdrawal *entity.Withdrawal,
	from []entity.WithdrawalStatus,
	to entity.WithdrawalStatus,
	fields map[string]any,
	refund bool,
) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ok, err := d.withdrawalRepo.UpdateStatus(ctx, withdrawal.ID, from, to, fields)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update withdrawal status: %v", err)
		return errorx.Unknown
	}

	if !ok {
		return errorx.New(errorx.InvalidTransition, "Cannot change withdrawal to %s", to)
	}

	if refund {
		if err := d.userRepo.RefundWalletBalance(ctx, withdrawal.UserID, withdrawal.GrossAmount); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot refund wallet balance: %v", err)
			return errorx.Unknown
		}
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return errorx.Unknown
	}

	return nil
}
