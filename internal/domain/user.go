package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/ethutil"
	"github.com/sponsornet/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	CreateMember(context.Context, *model.CreateMemberRequest) (*model.CreateMemberResponse, error)
	GetDashboard(context.Context, *model.GetDashboardRequest) (*model.GetDashboardResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

// CreateMember registers a member under an existing sponsor. Sponsor links are
// never rewritten afterwards, so the tree cannot get a cycle.
func (d *userDomain) CreateMember(
	ctx context.Context, req *model.CreateMemberRequest,
) (*model.CreateMemberResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	if req.SponsorName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty sponsor")
	}

	walletAddress := sql.NullString{}
	if req.WalletAddress != "" {
		address, ok := ethutil.NormalizeAddress(req.WalletAddress)
		if !ok {
			return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
		}

		walletAddress = sql.NullString{Valid: true, String: address}
	}

	sponsor, err := d.userRepo.GetByName(ctx, req.SponsorName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found sponsor")
		}

		xcontext.Logger(ctx).Errorf("Cannot get sponsor by name: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.userRepo.GetByName(ctx, req.Name)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The name has been used")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Name:          req.Name,
		WalletAddress: walletAddress,
		Role:          entity.RoleUser,
		SponsorID:     sql.NullString{Valid: true, String: sponsor.ID},
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateMemberResponse{ID: user.ID}, nil
}

func (d *userDomain) GetDashboard(
	ctx context.Context, req *model.GetDashboardRequest,
) (*model.GetDashboardResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	downline, err := d.userRepo.CountDownline(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count downline: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetDashboardResponse{
		User:                  convertUser(user, true),
		WalletBalance:         user.WalletBalance,
		SponsorIncome:         user.SponsorIncome,
		LevelIncome:           user.LevelIncome,
		HoldingIncome:         user.HoldingIncome,
		TotalCommissionIncome: user.SponsorIncome.Add(user.LevelIncome),
		TotalWithdrawn:        user.TotalWithdrawn,
		DirectDownline:        downline,
	}, nil
}
