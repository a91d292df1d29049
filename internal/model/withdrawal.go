package model

import "github.com/shopspring/decimal"

type CreateWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CreateWithdrawalResponse struct {
	Withdrawal Withdrawal `json:"withdrawal"`
}

type CancelWithdrawalRequest struct {
	ID string `json:"id"`
}

type CancelWithdrawalResponse struct{}

type GetMyWithdrawalsRequest struct{}

type GetMyWithdrawalsResponse struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

type GetWithdrawalsRequest struct {
	Status string `json:"status" form:"status"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetWithdrawalsResponse struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

type ProcessWithdrawalRequest struct {
	ID string `json:"id"`
}

type ProcessWithdrawalResponse struct{}

type CompleteWithdrawalRequest struct {
	ID     string `json:"id"`
	TxHash string `json:"tx_hash"`
}

type CompleteWithdrawalResponse struct{}

type RejectWithdrawalRequest struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

type RejectWithdrawalResponse struct{}
