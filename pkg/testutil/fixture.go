package testutil

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/pkg/xcontext"
)

// The fixture sponsor tree:
//
//	root -> user1 -> user2 -> user3
//	admin
var (
	// Users
	Admin = &entity.User{
		Base: entity.Base{ID: "admin"},
		Name: "admin",
		Role: entity.RoleAdmin,
	}

	Root = &entity.User{
		Base: entity.Base{ID: "root"},
		Name: "root",
		Role: entity.RoleUser,
	}

	User1 = &entity.User{
		Base:          entity.Base{ID: "user1"},
		Name:          "user1",
		Role:          entity.RoleUser,
		SponsorID:     sql.NullString{Valid: true, String: "root"},
		WalletAddress: sql.NullString{Valid: true, String: "0x6aA7bD2A6b8E1f0E1C2b3a9dD3F7bB8a0E3C4d51"},
	}

	User2 = &entity.User{
		Base:      entity.Base{ID: "user2"},
		Name:      "user2",
		Role:      entity.RoleUser,
		SponsorID: sql.NullString{Valid: true, String: "user1"},
	}

	User3 = &entity.User{
		Base:      entity.Base{ID: "user3"},
		Name:      "user3",
		Role:      entity.RoleUser,
		SponsorID: sql.NullString{Valid: true, String: "user2"},
	}

	Users = []*entity.User{Admin, Root, User1, User2, User3}

	// Nfts
	GoldNft = &entity.Nft{
		Base:  entity.Base{ID: "nft_gold"},
		Code:  "GOLD",
		Name:  "Gold",
		Price: decimal.NewFromInt(36500),
	}

	SilverNft = &entity.Nft{
		Base:  entity.Base{ID: "nft_silver"},
		Code:  "SILVER",
		Name:  "Silver",
		Price: decimal.NewFromInt(1000),
	}

	Nfts = []*entity.Nft{GoldNft, SilverNft}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertNfts(ctx)
}

func InsertUsers(ctx context.Context) {
	for _, u := range Users {
		user := *u
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}

func InsertNfts(ctx context.Context) {
	for _, n := range Nfts {
		nft := *n
		if err := xcontext.DB(ctx).Create(&nft).Error; err != nil {
			panic(err)
		}
	}
}
