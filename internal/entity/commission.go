package entity

import (
	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/pkg/enum"
)

type CommissionStatus string

var (
	CommissionActive    = enum.New(CommissionStatus("active"), "active")
	CommissionCompleted = enum.New(CommissionStatus("completed"), "completed")
)

// CommissionObligation is the entitlement of a sponsor to a part of a
// downline purchase, paid in daily installments.
type CommissionObligation struct {
	Base

	PurchaseID string      `gorm:"index"`
	Purchase   NftPurchase `gorm:"foreignKey:PurchaseID"`

	BuyerID   string `gorm:"index"`
	SponsorID string `gorm:"index"`
	Level     int

	Percent     decimal.Decimal `gorm:"type:decimal(10,4)"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,8)"`
	DailyAmount decimal.Decimal `gorm:"type:decimal(20,8)"`
	TotalDays   int
	DaysPaid    int
	PaidAmount  decimal.Decimal `gorm:"type:decimal(20,8);default:0"`

	Status CommissionStatus `gorm:"index;default:active"`

	// Calendar dates in dateutil.DateLayout.
	StartDate    string `gorm:"type:varchar(10)"`
	NextDueDate  string `gorm:"type:varchar(10);index"`
	LastPaidDate string `gorm:"type:varchar(10)"`
}

// CommissionPayout is a ledger entry of a credit made by the daily processor.
type CommissionPayout struct {
	SnowFlakeBase

	ObligationID string               `gorm:"index"`
	Obligation   CommissionObligation `gorm:"foreignKey:ObligationID"`

	SponsorID    string `gorm:"index"`
	Level        int
	Installments int
	Amount       decimal.Decimal `gorm:"type:decimal(20,8)"`
	PayDate      string          `gorm:"type:varchar(10);index"`
}
