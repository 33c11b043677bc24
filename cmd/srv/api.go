package main

import (
	"net/http"

	"github.com/voluntree-lab/backend/internal/middleware"
	"github.com/voluntree-lab/backend/pkg/router"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedis()
	s.loadPublisher()
	s.loadStorage()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := s.configs.ApiServer
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Api server starts on port: %s", cfg.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	s.logger.Infof("Api server stops")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API. Optional auth so logged-in callers still resolve to a
	// request user where it matters.
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.WithOptionalAuth())
	{
		router.GET(publicRouter, "/getActivity", s.activityDomain.Get)
		router.GET(publicRouter, "/getListActivity", s.activityDomain.GetList)
		router.GET(publicRouter, "/getOrganization", s.organizationDomain.Get)
		router.GET(publicRouter, "/getMember", s.userDomain.GetMember)
		router.GET(publicRouter, "/getBadgeCategories", s.badgeDomain.GetCategories)
		router.GET(publicRouter, "/getBadges", s.badgeDomain.GetBadges)
		router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	}

	authRouter := s.router.Branch()
	authRouter.Before(middleware.WithAuth())
	{
		// Member API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getMyBadges", s.badgeDomain.GetMyBadges)
		router.GET(authRouter, "/getMyXpHistory", s.xpHistoryDomain.GetMyHistory)

		// Activity API
		router.POST(authRouter, "/createActivity", s.activityDomain.Create)
		router.POST(authRouter, "/updateActivity", s.activityDomain.Update)
		router.POST(authRouter, "/transitionActivity", s.activityDomain.Transition)
		router.GET(authRouter, "/getActivityQR", s.activityDomain.GetQR)

		// Application API
		router.POST(authRouter, "/applyActivity", s.applicationDomain.Apply)
		router.POST(authRouter, "/setApplicationStatus", s.applicationDomain.SetStatus)
		router.GET(authRouter, "/getListApplication", s.applicationDomain.GetListForActivity)
		router.GET(authRouter, "/getMyApplications", s.applicationDomain.GetMyList)
		router.GET(authRouter, "/getPendingApplicationCount", s.applicationDomain.GetPendingCount)

		// Validation API. The first route is the QR landing page and
		// answers with a redirect, not a body.
		router.GET(authRouter, "/validate-activity", s.validationDomain.RedeemQR)
		router.POST(authRouter, "/validateActivity", s.validationDomain.Validate)
		router.GET(authRouter, "/getListValidation", s.validationDomain.GetListForActivity)

		// Notification API
		router.GET(authRouter, "/getNotifications", s.notificationDomain.GetList)
		router.POST(authRouter, "/markNotificationRead", s.notificationDomain.MarkRead)
		router.POST(authRouter, "/markAllNotificationsRead", s.notificationDomain.MarkAllRead)
		router.POST(authRouter, "/clearNotifications", s.notificationDomain.ClearAll)
	}

	adminRouter := s.router.Branch()
	adminRouter.Before(middleware.WithAuth())
	adminRouter.Before(middleware.NewOnlyAdmin(s.memberRepo).Middleware())
	{
		router.POST(adminRouter, "/createMember", s.userDomain.Create)
		router.POST(adminRouter, "/createOrganization", s.organizationDomain.Create)

		// Badge catalog API
		router.POST(adminRouter, "/createBadgeCategory", s.badgeDomain.CreateCategory)
		router.POST(adminRouter, "/updateBadgeCategory", s.badgeDomain.UpdateCategory)
		router.POST(adminRouter, "/deleteBadgeCategory", s.badgeDomain.DeleteCategory)
		router.POST(adminRouter, "/createBadge", s.badgeDomain.CreateBadge)
		router.POST(adminRouter, "/updateBadge", s.badgeDomain.UpdateBadge)
		router.POST(adminRouter, "/deleteBadge", s.badgeDomain.DeleteBadge)
		router.POST(adminRouter, "/uploadBadgeImage", s.badgeDomain.UploadImage)
	}
}
