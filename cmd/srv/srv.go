package main

import (
	"context"
	"net/http"

	"github.com/voluntree-lab/backend/config"
	"github.com/voluntree-lab/backend/internal/domain"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/migration"
	"github.com/voluntree-lab/backend/pkg/kafka"
	"github.com/voluntree-lab/backend/pkg/logger"
	"github.com/voluntree-lab/backend/pkg/pubsub"
	"github.com/voluntree-lab/backend/pkg/router"
	"github.com/voluntree-lab/backend/pkg/storage"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"github.com/voluntree-lab/backend/pkg/xredis"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	memberRepo       repository.MemberRepository
	organizationRepo repository.OrganizationRepository
	activityRepo     repository.ActivityRepository
	applicationRepo  repository.ApplicationRepository
	validationRepo   repository.ValidationRepository
	badgeRepo        repository.BadgeRepository
	notificationRepo repository.NotificationRepository
	xpHistoryRepo    repository.XpHistoryRepository

	userDomain         domain.UserDomain
	organizationDomain domain.OrganizationDomain
	activityDomain     domain.ActivityDomain
	applicationDomain  domain.ApplicationDomain
	validationDomain   domain.ValidationDomain
	badgeDomain        domain.BadgeDomain
	notificationDomain domain.NotificationDomain
	xpHistoryDomain    domain.XpHistoryDomain
	statisticDomain    domain.StatisticDomain

	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber
	fileStorage storage.Storage
	redisClient xredis.Client

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:               s.configs.Database.ConnectionString(),
		DefaultStringSize: 256,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		// The leaderboard degrades to Unavailable without redis. Nothing
		// else depends on it.
		s.logger.Warnf("Cannot connect to redis: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher(uuid.NewString(), []string{s.configs.Kafka.Addr})
}

func (s *srv) loadStorage() {
	s.fileStorage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRepos() {
	s.memberRepo = repository.NewMemberRepository()
	s.organizationRepo = repository.NewOrganizationRepository()
	s.activityRepo = repository.NewActivityRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.validationRepo = repository.NewValidationRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.xpHistoryRepo = repository.NewXpHistoryRepository()
}

func (s *srv) loadDomains() {
	notifier := domain.NewNotifier(s.notificationRepo, s.publisher)

	s.userDomain = domain.NewUserDomain(s.memberRepo, notifier)
	s.organizationDomain = domain.NewOrganizationDomain(s.organizationRepo, s.memberRepo)
	s.activityDomain = domain.NewActivityDomain(s.activityRepo, s.organizationRepo, s.memberRepo)
	s.applicationDomain = domain.NewApplicationDomain(
		s.applicationRepo, s.activityRepo, s.memberRepo, notifier)
	s.validationDomain = domain.NewValidationDomain(
		s.validationRepo,
		s.activityRepo,
		s.applicationRepo,
		s.memberRepo,
		s.badgeRepo,
		s.xpHistoryRepo,
		notifier,
		s.redisClient,
	)
	s.badgeDomain = domain.NewBadgeDomain(s.badgeRepo, s.memberRepo, s.fileStorage)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
	s.xpHistoryDomain = domain.NewXpHistoryDomain(s.xpHistoryRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.redisClient)
}
