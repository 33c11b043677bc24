package main

import (
	"net/http"

	"github.com/voluntree-lab/backend/internal/domain/notification/proxy"
	"github.com/voluntree-lab/backend/internal/middleware"
	"github.com/voluntree-lab/backend/pkg/kafka"
	"github.com/voluntree-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startProxy(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRepos()

	proxyRouter := proxy.NewRouter(s.ctx)
	s.subscriber = kafka.NewSubscriber(
		"notification-proxy",
		[]string{s.configs.Kafka.Addr},
		[]string{proxy.NotificationTopic},
		proxyRouter.Subscribe,
	)
	go s.subscriber.Subscribe(s.ctx)

	proxyServer := proxy.NewProxyServer(proxyRouter, s.notificationRepo)

	defaultRouter := router.New(s.db, *s.configs, s.logger)
	defaultRouter.AddCloser(middleware.Logger())
	defaultRouter.Before(middleware.WithAuth())
	router.Websocket(defaultRouter, "/notification", proxyServer.ServeNotification)

	cfg := s.configs.ProxyServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: defaultRouter.Handler(),
	}

	s.logger.Infof("Proxy server starts on port: %s", cfg.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	s.logger.Infof("Proxy server stops")
	return nil
}
