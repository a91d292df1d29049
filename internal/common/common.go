package common

import (
	"context"

	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/xcontext"
)

const (
	TopicNftPurchased           = "nft.purchased"
	TopicCommissionDailySettled = "commission.daily_settled"
)

// Pagination applies the default limit and rejects limits above the
// configured maximum.
func Pagination(ctx context.Context, offset, limit int) (int, int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit < 0 || offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset and limit must be positive")
	}

	if limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return offset, limit, nil
}
