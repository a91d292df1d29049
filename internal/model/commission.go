package model

import "github.com/shopspring/decimal"

type GetCommissionStatisticsRequest struct{}

type CommissionStatistics struct {
	TotalCommissions      int64           `json:"totalCommissions"`
	ActiveCommissions     int64           `json:"activeCommissions"`
	CompletedCommissions  int64           `json:"completedCommissions"`
	TotalCommissionAmount decimal.Decimal `json:"totalCommissionAmount"`
	TotalPaidAmount       decimal.Decimal `json:"totalPaidAmount"`
	TodaysCommissions     decimal.Decimal `json:"todaysCommissions"`
}

type GetCommissionStatisticsResponse struct {
	Statistics CommissionStatistics `json:"statistics"`
}

type ProcessDailyCommissionsRequest struct{}

type CommissionSummary struct {
	TotalProcessed       int             `json:"totalProcessed"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	CompletedCommissions int             `json:"completedCommissions"`
	Errors               int             `json:"errors"`
}

type ProcessDailyCommissionsResponse struct {
	Summary CommissionSummary `json:"summary"`
}

type GetMyCommissionsRequest struct{}

type GetMyCommissionsResponse struct {
	Commissions []CommissionObligation `json:"commissions"`
}
