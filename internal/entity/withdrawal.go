package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/pkg/enum"
)

type WithdrawalStatus string

var (
	WithdrawalPending    = enum.New(WithdrawalStatus("pending"), "pending")
	WithdrawalProcessing = enum.New(WithdrawalStatus("processing"), "processing")
	WithdrawalCompleted  = enum.New(WithdrawalStatus("completed"), "completed")
	WithdrawalRejected   = enum.New(WithdrawalStatus("rejected"), "rejected")
	WithdrawalCancelled  = enum.New(WithdrawalStatus("cancelled"), "cancelled")
)

type Withdrawal struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	WalletAddress string
	Status        WithdrawalStatus `gorm:"index;default:pending"`

	GrossAmount decimal.Decimal `gorm:"type:decimal(20,8)"`
	FeeAmount   decimal.Decimal `gorm:"type:decimal(20,8)"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(20,8)"`

	TxHash      sql.NullString
	AdminNote   string
	ProcessedAt sql.NullTime
	CompletedAt sql.NullTime
}
