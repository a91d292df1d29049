package model

import "github.com/shopspring/decimal"

type CreateMemberRequest struct {
	Name          string `json:"name"`
	SponsorName   string `json:"sponsor_name"`
	WalletAddress string `json:"wallet_address"`
}

type CreateMemberResponse struct {
	ID string `json:"id"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	User                  User            `json:"user"`
	WalletBalance         decimal.Decimal `json:"wallet_balance"`
	SponsorIncome         decimal.Decimal `json:"sponsor_income"`
	LevelIncome           decimal.Decimal `json:"level_income"`
	HoldingIncome         decimal.Decimal `json:"holding_income"`
	TotalCommissionIncome decimal.Decimal `json:"total_commission_income"`
	TotalWithdrawn        decimal.Decimal `json:"total_withdrawn"`
	DirectDownline        int64           `json:"direct_downline"`
}
