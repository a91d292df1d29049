package domain

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/common"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/dateutil"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/pubsub"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/sponsornet/backend/pkg/xredis"
)

const defaultCommissionLockTTL = 10 * time.Minute

type CommissionDomain interface {
	GetStatistics(context.Context, *model.GetCommissionStatisticsRequest) (*model.GetCommissionStatisticsResponse, error)
	ProcessDailyCommissions(context.Context, *model.ProcessDailyCommissionsRequest) (*model.ProcessDailyCommissionsResponse, error)
	GetMyCommissions(context.Context, *model.GetMyCommissionsRequest) (*model.GetMyCommissionsResponse, error)

	// ProcessAt pays every obligation due at the calendar day of now.
	ProcessAt(ctx context.Context, now time.Time) (*model.CommissionSummary, error)
}

type commissionDomain struct {
	commissionRepo repository.CommissionRepository
	userRepo       repository.UserRepository
	redisClient    xredis.Client
	publisher      pubsub.Publisher
	now            func() time.Time
}

// NewCommissionDomain creates the commission domain. A nil redisClient
// disables the run lock, the per-obligation claim still prevents double
// payment.
func NewCommissionDomain(
	commissionRepo repository.CommissionRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) *commissionDomain {
	return &commissionDomain{
		commissionRepo: commissionRepo,
		userRepo:       userRepo,
		redisClient:    redisClient,
		publisher:      publisher,
		now:            time.Now,
	}
}

func (d *commissionDomain) GetStatistics(
	ctx context.Context, req *model.GetCommissionStatisticsRequest,
) (*model.GetCommissionStatisticsResponse, error) {
	stat, err := d.commissionRepo.Statistic(ctx, dateutil.DateKey(d.now()))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get commission statistic: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCommissionStatisticsResponse{
		Statistics: model.CommissionStatistics{
			TotalCommissions:      stat.Total,
			ActiveCommissions:     stat.Active,
			CompletedCommissions:  stat.Completed,
			TotalCommissionAmount: stat.TotalAmount,
			TotalPaidAmount:       stat.PaidAmount,
			TodaysCommissions:     stat.TodayAmount,
		},
	}, nil
}

func (d *commissionDomain) ProcessDailyCommissions(
	ctx context.Context, req *model.ProcessDailyCommissionsRequest,
) (*model.ProcessDailyCommissionsResponse, error) {
	summary, err := d.ProcessAt(ctx, d.now())
	if err != nil {
		return nil, err
	}

	return &model.ProcessDailyCommissionsResponse{Summary: *summary}, nil
}

func (d *commissionDomain) GetMyCommissions(
	ctx context.Context, req *model.GetMyCommissionsRequest,
) (*model.GetMyCommissionsResponse, error) {
	obligations, err := d.commissionRepo.GetBySponsorID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get commissions of sponsor: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.CommissionObligation{}
	for _, o := range obligations {
		result = append(result, convertCommissionObligation(&o))
	}

	return &model.GetMyCommissionsResponse{Commissions: result}, nil
}

func (d *commissionDomain) ProcessAt(ctx context.Context, now time.Time) (*model.CommissionSummary, error) {
	today := dateutil.DateKey(now)

	unlock, err := d.lock(ctx, today)
	if err != nil {
		return nil, err
	}
	defer unlock()

	obligations, err := d.commissionRepo.GetDue(ctx, today)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get due commissions: %v", err)
		return nil, errorx.Unknown
	}

	summary := model.CommissionSummary{TotalAmount: decimal.Zero}
	for i := range obligations {
		o := &obligations[i]
		level := strconv.Itoa(o.Level)

		result, err := d.settle(ctx, o, today)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot settle commission %s of sponsor %s: %v", o.ID, o.SponsorID, err)
			common.PromCounters[common.CommissionErrorsTotal].WithLabelValues(level).Inc()
			summary.Errors++
			continue
		}

		if result == nil {
			xcontext.Logger(ctx).Debugf("Commission %s was already settled on %s", o.ID, today)
			continue
		}

		summary.TotalProcessed++
		summary.TotalAmount = summary.TotalAmount.Add(result.amount)
		common.PromCounters[common.CommissionInstallmentsTotal].WithLabelValues(level).Add(float64(result.installments))
		common.PromCounters[common.CommissionAmountTotal].WithLabelValues(level).Add(result.amount.InexactFloat64())
		if result.completed {
			summary.CompletedCommissions++
			common.PromCounters[common.CommissionCompletedTotal].WithLabelValues(level).Inc()
		}
	}

	xcontext.Logger(ctx).Infof("Daily commissions of %s: processed=%d amount=%s completed=%d errors=%d",
		today, summary.TotalProcessed, summary.TotalAmount, summary.CompletedCommissions, summary.Errors)

	pack, err := pubsub.NewPack(today, model.DailyCommissionSettledEvent{Date: today, Summary: summary})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create daily settled pack: %v", err)
	} else if err := d.publisher.Publish(ctx, common.TopicCommissionDailySettled, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish daily settled event: %v", err)
	}

	return &summary, nil
}

// lock prevents two runs of the same day from working at the same time. The
// returned function releases the lock.
func (d *commissionDomain) lock(ctx context.Context, today string) (func(), error) {
	if d.redisClient == nil {
		return func() {}, nil
	}

	ttl := xcontext.Configs(ctx).Redis.LockTTL
	if ttl <= 0 {
		ttl = defaultCommissionLockTTL
	}

	key := common.RedisKeyDailyCommissionLock(today)
	owner := uuid.NewString()
	ok, err := d.redisClient.SetNX(ctx, key, owner, ttl)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot acquire daily commission lock: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.ProcessorBusy, "Daily commissions are being processed")
	}

	return func() {
		if _, err := d.redisClient.CompareAndDel(ctx, key, owner); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot release daily commission lock: %v", err)
		}
	}, nil
}

type settlement struct {
	amount       decimal.Decimal
	installments int
	completed    bool
}

// settle pays the installments of an obligation owed until today in its own
// transaction. It returns nil without error if another run already paid the
// obligation today.
func (d *commissionDomain) settle(
	ctx context.Context, o *entity.CommissionObligation, today string,
) (*settlement, error) {
	elapsed, err := dateutil.DaysBetween(o.NextDueDate, today)
	if err != nil {
		return nil, err
	}

	remaining := o.TotalDays - o.DaysPaid
	if remaining <= 0 {
		return nil, errors.New("active commission has no remaining installment")
	}

	installments := min(elapsed+1, remaining)
	amount := o.DailyAmount.Mul(decimal.NewFromInt(int64(installments)))
	status := entity.CommissionActive
	if o.DaysPaid+installments == o.TotalDays {
		// The last installment pays the rounding remainder.
		amount = o.TotalAmount.Sub(o.PaidAmount)
		status = entity.CommissionCompleted
	}

	if amount.IsNegative() {
		return nil, errors.New("paid amount exceeds total amount")
	}

	nextDueDate, err := dateutil.AddDays(today, 1)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ok, err := d.commissionRepo.Claim(ctx, repository.ClaimCommissionParams{
		ID:           o.ID,
		DaysPaid:     o.DaysPaid,
		Installments: installments,
		Amount:       amount,
		Today:        today,
		NextDueDate:  nextDueDate,
		Status:       status,
	})
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, nil
	}

	field := repository.LevelIncome
	if o.Level == 1 {
		field = repository.SponsorIncome
	}

	if err := d.userRepo.CreditIncome(ctx, o.SponsorID, field, amount); err != nil {
		return nil, err
	}

	err = d.commissionRepo.CreatePayout(ctx, &entity.CommissionPayout{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		ObligationID:  o.ID,
		SponsorID:     o.SponsorID,
		Level:         o.Level,
		Installments:  installments,
		Amount:        amount,
		PayDate:       today,
	})
	if err != nil {
		return nil, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		return nil, err
	}

	return &settlement{amount: amount, installments: installments, completed: status == entity.CommissionCompleted}, nil
}
