package domain

import (
	"database/sql"
	"time"

	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(defaultTimeLayout)
}

func convertUser(user *entity.User, includeSensitive bool) model.User {
	if user == nil {
		return model.User{}
	}

	result := model.User{
		ID:        user.ID,
		Name:      user.Name,
		SponsorID: user.SponsorID.String,
		CreatedAt: user.CreatedAt.Format(defaultTimeLayout),
	}

	if includeSensitive {
		result.Role = string(user.Role)
		result.WalletAddress = user.WalletAddress.String
	}

	return result
}

func convertNft(nft *entity.Nft) model.Nft {
	return model.Nft{
		ID:    nft.ID,
		Code:  nft.Code,
		Name:  nft.Name,
		Price: nft.Price,
	}
}

func convertNftPurchase(purchase *entity.NftPurchase) model.NftPurchase {
	return model.NftPurchase{
		ID:           purchase.ID,
		UserID:       purchase.UserID,
		NftCode:      purchase.NftCode,
		Price:        purchase.Price,
		PayoutStatus: string(purchase.PayoutStatus),
		PayoutAmount: purchase.PayoutAmount,
		PaidAt:       convertNullTime(purchase.PaidAt),
		CreatedAt:    purchase.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertCommissionObligation(o *entity.CommissionObligation) model.CommissionObligation {
	return model.CommissionObligation{
		ID:           o.ID,
		PurchaseID:   o.PurchaseID,
		BuyerID:      o.BuyerID,
		SponsorID:    o.SponsorID,
		Level:        o.Level,
		Percent:      o.Percent,
		TotalAmount:  o.TotalAmount,
		DailyAmount:  o.DailyAmount,
		TotalDays:    o.TotalDays,
		DaysPaid:     o.DaysPaid,
		PaidAmount:   o.PaidAmount,
		Status:       string(o.Status),
		StartDate:    o.StartDate,
		NextDueDate:  o.NextDueDate,
		LastPaidDate: o.LastPaidDate,
	}
}

func convertWithdrawal(w *entity.Withdrawal) model.Withdrawal {
	return model.Withdrawal{
		ID:            w.ID,
		UserID:        w.UserID,
		WalletAddress: w.WalletAddress,
		Status:        string(w.Status),
		GrossAmount:   w.GrossAmount,
		FeeAmount:     w.FeeAmount,
		NetAmount:     w.NetAmount,
		TxHash:        w.TxHash.String,
		AdminNote:     w.AdminNote,
		ProcessedAt:   convertNullTime(w.ProcessedAt),
		CompletedAt:   convertNullTime(w.CompletedAt),
		CreatedAt:     w.CreatedAt.Format(defaultTimeLayout),
	}
}
