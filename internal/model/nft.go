package model

import "github.com/shopspring/decimal"

type CreateNftRequest struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CreateNftResponse struct {
	ID string `json:"id"`
}

type GetNftsRequest struct{}

type GetNftsResponse struct {
	Nfts []Nft `json:"nfts"`
}

type PurchaseNftRequest struct {
	NftCode string `json:"nft_code"`
}

type PurchaseNftResponse struct {
	Purchase    NftPurchase            `json:"purchase"`
	Commissions []CommissionObligation `json:"commissions"`
}

type GetMyPurchasesRequest struct{}

type GetMyPurchasesResponse struct {
	Purchases []NftPurchase `json:"purchases"`
}

type PayHoldingWalletRequest struct {
	PurchaseID string          `json:"purchase_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type PayHoldingWalletResponse struct{}
