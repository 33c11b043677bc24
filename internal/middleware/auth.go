package middleware

import (
	"context"
	"strings"

	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/router"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

// WithAuth resolves the caller from the bearer header or the access token
// cookie and records the user id on the context. It fails closed.
func WithAuth() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := bearerToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
		}

		claims, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, claims.ID), nil
	}
}

// WithOptionalAuth resolves the caller when credentials are present but lets
// anonymous requests through.
func WithOptionalAuth() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := bearerToken(ctx)
		if token == "" {
			return nil, nil
		}

		claims, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			return nil, nil
		}

		return xcontext.WithRequestUserID(ctx, claims.ID), nil
	}
}

func bearerToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	auth := req.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	name := xcontext.Configs(ctx).Auth.AccessToken.Name
	if cookie, err := req.Cookie(name); err == nil {
		return cookie.Value
	}

	return ""
}
