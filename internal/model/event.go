package model

import "github.com/shopspring/decimal"

type NftPurchasedEvent struct {
	PurchaseID  string          `json:"purchase_id"`
	UserID      string          `json:"user_id"`
	NftCode     string          `json:"nft_code"`
	Price       decimal.Decimal `json:"price"`
	Commissions int             `json:"commissions"`
}

type DailyCommissionSettledEvent struct {
	Date    string            `json:"date"`
	Summary CommissionSummary `json:"summary"`
}
