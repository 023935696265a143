package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPickupExpiryInterval = time.Hour
	defaultPickupExpiryBatch    = 100
	defaultEventRelayInterval   = 5 * time.Second
	defaultEventRelayBatch      = 100
	defaultStatsCacheTTL        = 30 * time.Second
	defaultStatsTimezone        = "UTC"
)

type (
	Tasks struct {
		PickupExpiryInterval time.Duration
		PickupExpiryBatch    int
		EventRelayInterval   time.Duration
		EventRelayBatch      int
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host        string
		Port        string
		User        string
		Password    string
		DBName      string
		SSLMode     string
		AutoMigrate bool
	}

	Worker struct {
		PortHealthcheck string
	}

	Kafka struct {
		Brokers        string
		LifecycleTopic string
		Sarama         Sarama
	}

	Sarama struct {
		Version string
	}

	Redis struct {
		Addr     string // пустой адрес выключает кэш статистики
		Password string
		DB       int
	}

	Stats struct {
		CacheTTL time.Duration
		Location *time.Location
	}

	Telemetry struct {
		OTLPEndpoint string // пустой endpoint выключает экспорт трейсов
		OTLPInsecure bool
	}

	Config struct {
		Tasks     Tasks
		Server    HTTPServer
		Database  Database
		Worker    Worker
		Kafka     Kafka
		Redis     Redis
		Stats     Stats
		Telemetry Telemetry
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	expiryInterval, err := osGetEnvDuration("BACKGROUND_PICKUP_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	expiryBatch, err := osGetInt("BACKGROUND_PICKUP_EXPIRY_BATCH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	relayInterval, err := osGetEnvDuration("BACKGROUND_EVENT_RELAY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	relayBatch, err := osGetInt("BACKGROUND_EVENT_RELAY_BATCH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	autoMigrate, err := osGetBool("POSTGRES_AUTO_MIGRATE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cacheTTL, err := osGetEnvDuration("STATS_CACHE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	location, err := osGetLocation("STATS_TIMEZONE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	otlpInsecure, err := osGetBool("OTEL_EXPORTER_OTLP_INSECURE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			PickupExpiryInterval: withDefault(expiryInterval, defaultPickupExpiryInterval),
			PickupExpiryBatch:    withDefault(expiryBatch, defaultPickupExpiryBatch),
			EventRelayInterval:   withDefault(relayInterval, defaultEventRelayInterval),
			EventRelayBatch:      withDefault(relayBatch, defaultEventRelayBatch),
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:        os.Getenv("POSTGRES_HOST"),
			Port:        os.Getenv("POSTGRES_PORT"),
			User:        os.Getenv("POSTGRES_USER"),
			Password:    os.Getenv("POSTGRES_PASSWORD"),
			DBName:      os.Getenv("POSTGRES_DB"),
			SSLMode:     os.Getenv("POSTGRES_SSLMODE"),
			AutoMigrate: autoMigrate,
		},
		Worker: Worker{
			PortHealthcheck: os.Getenv("WORKER_HTTP_HEALTHCHECK_PORT"),
		},
		Kafka: Kafka{
			Brokers:        os.Getenv("KAFKA_BROKERS"),
			LifecycleTopic: os.Getenv("KAFKA_LIFECYCLE_TOPIC"),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Stats: Stats{
			CacheTTL: withDefault(cacheTTL, defaultStatsCacheTTL),
			Location: location,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			OTLPInsecure: otlpInsecure,
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.PickupExpiryBatch < 0 {
		return errors.New("BACKGROUND_PICKUP_EXPIRY_BATCH must be positive")
	}
	if cfg.Tasks.EventRelayBatch < 0 {
		return errors.New("BACKGROUND_EVENT_RELAY_BATCH must be positive")
	}
	if cfg.Worker.PortHealthcheck == "" {
		return errors.New("WORKER_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.LifecycleTopic == "" {
		return errors.New("KAFKA_LIFECYCLE_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

func withDefault[T comparable](val, def T) T {
	var zero T
	if val == zero {
		return def
	}
	return val
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetLocation(s string) (*time.Location, error) {
	val := os.Getenv(s)
	if val == "" {
		val = defaultStatsTimezone
	}

	loc, err := time.LoadLocation(val)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone for %s=%q: %w", s, val, err)
	}
	return loc, nil
}
