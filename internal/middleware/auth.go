package middleware

import (
	"context"
	"strings"

	"github.com/sponsornet/backend/internal/model"
	"github.com/sponsornet/backend/pkg/errorx"
	"github.com/sponsornet/backend/pkg/router"
	"github.com/sponsornet/backend/pkg/xcontext"
)

const bearerPrefix = "Bearer "

type AuthVerifier struct {
	verifyAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.verifyAccessToken = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.verifyAccessToken {
			if userID := verifyAccessToken(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func verifyAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return ""
	}

	token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	if token == "" {
		return ""
	}

	var accessToken model.AccessToken
	if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
		return ""
	}

	return accessToken.ID
}
