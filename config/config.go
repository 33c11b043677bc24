package config

import (
	"fmt"
	"time"

	"github.com/voluntree-lab/backend/pkg/storage"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	ApiServer   ServerConfigs
	ProxyServer ServerConfigs
	Auth        AuthConfigs
	Session     SessionConfigs
	Storage     storage.S3Configs
	File        FileConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
	Engagement  EngagementConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string
	Port         string
	AllowCORS    []string
	Cert         string
	Key          string
	MaxLimit     int
	DefaultLimit int
}

type FileConfigs struct {
	MaxSize int64
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type EngagementConfigs struct {
	// DashboardURL is where the validation flow redirects scanners back to.
	DashboardURL string

	// QRBaseURL prefixes the payload encoded into activity QR codes.
	QRBaseURL string

	// QRTokenBytes is the entropy of a validation token. 16 bytes is the
	// floor required by the proof-of-presence contract.
	QRTokenBytes int

	ReferralCodeLength uint

	// ColdStartNotifications is how many recent notifications a fresh
	// subscription receives before tailing live ones.
	ColdStartNotifications int

	LeaderboardLimit int
}
