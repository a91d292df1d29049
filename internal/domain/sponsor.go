package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/config"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/dateutil"
	"github.com/sponsornet/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// dailyAmountPlaces is the precision of a daily installment.
const dailyAmountPlaces = 8

type sponsorLevel struct {
	SponsorID string
	Level     int

	// Deleted sponsors still count as a level but receive nothing.
	Deleted bool
}

// sponsorChain walks the parent pointers from userID upward and returns at
// most maxDepth ancestors, the direct sponsor being level 1. The walk stops at
// a root account or at an id it has already visited.
func sponsorChain(
	ctx context.Context,
	userRepo repository.UserRepository,
	userID string,
	maxDepth int,
) ([]sponsorLevel, error) {
	current, err := userRepo.GetByIDUnscoped(ctx, userID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{userID: true}
	chain := []sponsorLevel{}
	for level := 1; level <= maxDepth; level++ {
		if !current.SponsorID.Valid || current.SponsorID.String == "" {
			break
		}

		sponsorID := current.SponsorID.String
		if visited[sponsorID] {
			xcontext.Logger(ctx).Warnf("Detected a cycle in sponsor chain of %s at %s", userID, sponsorID)
			break
		}
		visited[sponsorID] = true

		sponsor, err := userRepo.GetByIDUnscoped(ctx, sponsorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Warnf("Sponsor %s of %s does not exist", sponsorID, current.ID)
				break
			}

			return nil, err
		}

		chain = append(chain, sponsorLevel{
			SponsorID: sponsorID,
			Level:     level,
			Deleted:   sponsor.DeletedAt.Valid,
		})
		current = sponsor
	}

	return chain, nil
}

// buildObligations creates the commission schedule of a purchase. The first
// installment is due on the day after the purchase.
func buildObligations(
	cfg config.CommissionConfigs,
	purchase *entity.NftPurchase,
	chain []sponsorLevel,
	purchaseDate string,
) ([]entity.CommissionObligation, error) {
	startDate, err := dateutil.AddDays(purchaseDate, 1)
	if err != nil {
		return nil, err
	}

	days := decimal.NewFromInt(int64(cfg.ScheduleDays))
	hundred := decimal.NewFromInt(100)

	obligations := []entity.CommissionObligation{}
	for _, s := range chain {
		if s.Deleted || s.Level > len(cfg.LevelPercents) {
			continue
		}

		percent := cfg.LevelPercents[s.Level-1]
		if !percent.IsPositive() {
			continue
		}

		total := purchase.Price.Mul(percent).Div(hundred)
		obligations = append(obligations, entity.CommissionObligation{
			Base:        entity.Base{ID: uuid.NewString()},
			PurchaseID:  purchase.ID,
			BuyerID:     purchase.UserID,
			SponsorID:   s.SponsorID,
			Level:       s.Level,
			Percent:     percent,
			TotalAmount: total,
			DailyAmount: total.Div(days).Round(dailyAmountPlaces),
			TotalDays:   cfg.ScheduleDays,
			Status:      entity.CommissionActive,
			StartDate:   startDate,
			NextDueDate: startDate,
		})
	}

	return obligations, nil
}
