package main

import (
	"fmt"

	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) generateToken(cctx *cli.Context) error {
	expiration := cctx.Duration("expiration")
	if expiration <= 0 {
		expiration = xcontext.Configs(s.ctx).Auth.AccessToken.Expiration
	}

	token, err := xcontext.TokenEngine(s.ctx).Generate(expiration, model.AccessToken{
		ID: cctx.String("user"),
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
