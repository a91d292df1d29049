package entity

import (
	"context"

	"github.com/sponsornet/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Nft{},
		&NftPurchase{},
		&CommissionObligation{},
		&CommissionPayout{},
		&Withdrawal{},
	)
}
