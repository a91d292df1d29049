package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/pkg/enum"
)

type PayoutStatus string

var (
	PayoutPending = enum.New(PayoutStatus("pending"), "pending")
	PayoutPaid    = enum.New(PayoutStatus("paid"), "paid")
)

type Nft struct {
	Base

	Code  string `gorm:"unique"`
	Name  string
	Price decimal.Decimal `gorm:"type:decimal(20,8)"`
}

type NftPurchase struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_nft_purchases_user_code"`
	User   User   `gorm:"foreignKey:UserID"`

	NftCode string `gorm:"uniqueIndex:idx_nft_purchases_user_code"`
	Price   decimal.Decimal `gorm:"type:decimal(20,8)"`

	// Holding wallet payout, settled manually by admins.
	PayoutStatus PayoutStatus    `gorm:"default:pending"`
	PayoutAmount decimal.Decimal `gorm:"type:decimal(20,8);default:0"`
	PaidAt       sql.NullTime
}
