package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/voluntree-lab/backend/config"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/migration"
	"github.com/voluntree-lab/backend/pkg/authenticator"
	"github.com/voluntree-lab/backend/pkg/logger"
	"github.com/voluntree-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	// TranslateError maps the sqlite unique violation to
	// gorm.ErrDuplicatedKey, which the redemption path depends on.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
		},
		Engagement: config.EngagementConfigs{
			DashboardURL:           "https://app.example.com/dashboard",
			QRBaseURL:              "https://app.example.com",
			QRTokenBytes:           16,
			ReferralCodeLength:     5,
			ColdStartNotifications: 10,
			LeaderboardLimit:       10,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
