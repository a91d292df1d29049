package model

import "github.com/shopspring/decimal"

type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WalletAddress string `json:"wallet_address,omitempty"`
	Role          string `json:"role,omitempty"`
	SponsorID     string `json:"sponsor_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type Nft struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type NftPurchase struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	NftCode      string          `json:"nft_code"`
	Price        decimal.Decimal `json:"price"`
	PayoutStatus string          `json:"payout_status"`
	PayoutAmount decimal.Decimal `json:"payout_amount"`
	PaidAt       string          `json:"paid_at,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

type CommissionObligation struct {
	ID           string          `json:"id"`
	PurchaseID   string          `json:"purchase_id"`
	BuyerID      string          `json:"buyer_id"`
	SponsorID    string          `json:"sponsor_id"`
	Level        int             `json:"level"`
	Percent      decimal.Decimal `json:"percent"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DailyAmount  decimal.Decimal `json:"daily_amount"`
	TotalDays    int             `json:"total_days"`
	DaysPaid     int             `json:"days_paid"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Status       string          `json:"status"`
	StartDate    string          `json:"start_date"`
	NextDueDate  string          `json:"next_due_date"`
	LastPaidDate string          `json:"last_paid_date,omitempty"`
}

type Withdrawal struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	WalletAddress string          `json:"wallet_address"`
	Status        string          `json:"status"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	TxHash        string          `json:"tx_hash,omitempty"`
	AdminNote     string          `json:"admin_note,omitempty"`
	ProcessedAt   string          `json:"processed_at,omitempty"`
	CompletedAt   string          `json:"completed_at,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
