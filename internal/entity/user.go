package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleUser  = enum.New(GlobalRole("user"), "user")
	RoleAdmin = enum.New(GlobalRole("admin"), "admin")
)

var GlobalAdminRoles = []GlobalRole{RoleAdmin}

type User struct {
	Base

	Name          string `gorm:"unique"`
	WalletAddress sql.NullString
	Role          GlobalRole `gorm:"default:user"`

	// SponsorID is null only for system-created root accounts.
	SponsorID sql.NullString `gorm:"index"`
	Sponsor   *User          `gorm:"foreignKey:SponsorID"`

	WalletBalance  decimal.Decimal `gorm:"type:decimal(20,8);default:0"`
	SponsorIncome  decimal.Decimal `gorm:"type:decimal(20,8);default:0"`
	LevelIncome    decimal.Decimal `gorm:"type:decimal(20,8);default:0"`
	HoldingIncome  decimal.Decimal `gorm:"type:decimal(20,8);default:0"`
	TotalWithdrawn decimal.Decimal `gorm:"type:decimal(20,8);default:0"`
}
