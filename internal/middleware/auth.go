package middleware

import (
	"context"
	"strings"

	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/router"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (verifier *AuthVerifier) WithAccessToken() *AuthVerifier {
	verifier.useAccessToken = true
	return verifier
}

func (verifier *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if verifier.useAccessToken {
			token := getAccessToken(ctx)
			if token != "" {
				var info model.AccessToken
				if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
					xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
					return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
				}

				return xcontext.WithRequestUserID(ctx, info.ID), nil
			}

			if userID := getSessionUserID(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getSessionUserID(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	store := xcontext.SessionStore(ctx)
	if req == nil || store == nil {
		return ""
	}

	session, err := store.Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get session: %v", err)
		return ""
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok {
		return ""
	}

	return userID
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found && auth == "Bearer" {
		return token
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
