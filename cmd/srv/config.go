package main

import (
	"context"
	"os"
	"time"

	"github.com/voluntree-lab/backend/config"
	"github.com/voluntree-lab/backend/pkg/storage"
	"github.com/voluntree-lab/backend/pkg/xcontext"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg := defaultConfigs()

	path := cctx.String("config")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			panic(err)
		}
	}

	// Secrets come from the environment, never from the config file.
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("AUTH_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}

	s.configs = cfg
	s.ctx = xcontext.WithConfigs(context.Background(), *cfg)
}

func defaultConfigs() *config.Configs {
	return &config.Configs{
		Env: "local",
		Database: config.DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "voluntree",
			User:     "voluntree",
		},
		ApiServer: config.ServerConfigs{
			Host:         "localhost",
			Port:         "8080",
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		ProxyServer: config.ServerConfigs{
			Host: "localhost",
			Port: "8081",
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Session: config.SessionConfigs{
			Name: "voluntree_session",
		},
		Storage: storage.S3Configs{
			Region: "eu-west-1",
			Bucket: "voluntree",
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
		Redis: config.RedisConfigs{
			Addr: "localhost:6379",
		},
		Kafka: config.KafkaConfigs{
			Addr: "localhost:9092",
		},
		Engagement: config.EngagementConfigs{
			DashboardURL:           "http://localhost:3000/dashboard",
			QRBaseURL:              "http://localhost:8080",
			QRTokenBytes:           16,
			ReferralCodeLength:     8,
			ColdStartNotifications: 10,
			LeaderboardLimit:       10,
		},
	}
}
