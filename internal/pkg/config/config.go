package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultAtRiskSweepSchedule = "@every 1m"
	defaultIdempotencyTTL      = 24 * time.Hour
	defaultWatcherInterval     = 30 * time.Second
	defaultWatcherCooldown     = 10 * time.Second
	defaultWatcherSuppress     = 5 * time.Second
)

type (
	Tasks struct {
		AtRiskSweepSchedule string
	}

	HTTPServer struct {
		Port             string
		GRPCPort         string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // емкость корзины одного клиента
		RateLimiterBurst int           // пополнение корзины, токенов в секунду
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		// MaxConns/MinConns размер пула, 0 значит значения по умолчанию из postgres.NewConnPool
		MaxConns int
		MinConns int
	}

	Auth struct {
		JWTSecret string
		JWTIssuer string
	}

	Storage struct {
		Endpoint        string
		Region          string
		Bucket          string
		AccessKeyID     string
		SecretAccessKey string
		// PublicURL префикс ссылок на загруженные файлы, по умолчанию endpoint/bucket
		PublicURL    string
		UsePathStyle bool
	}

	Redis struct {
		Addr           string
		Password       string
		DB             int
		IdempotencyTTL time.Duration
	}

	Kafka struct {
		PortHealthcheck    string
		Brokers            string
		Topic              string
		NotificationsTopic string
		ConsumerGroup      string
		Sarama             Sarama
		Handlers           KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	// Watcher клиент, который опрашивает REST API от имени одного пользователя.
	Watcher struct {
		APIBaseURL     string
		APIGRPCHost    string
		Token          string
		Group          string
		Interval       time.Duration
		Cooldown       time.Duration
		SuppressWindow time.Duration
		RequestTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Auth     Auth
		Storage  Storage
		Redis    Redis
		Kafka    Kafka
		Watcher  Watcher
	}
)

// Load загружает и проверяет все секции.
func Load() (*Config, error) {
	return load(validateConfig)
}

// LoadService секции HTTP API.
func LoadService() (*Config, error) {
	return load(validateService)
}

// LoadWorker секции consumer'а истории статусов.
func LoadWorker() (*Config, error) {
	return load(validateWorker)
}

// LoadWatcher секции клиента уведомлений.
func LoadWatcher() (*Config, error) {
	return load(validateWatcher)
}

func load(validate func(cfg *Config) error) (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT")
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

	s3PathStyle, err := osGetBool("S3_USE_PATH_STYLE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	idempotencyTTL, err := osGetEnvDuration("REDIS_IDEMPOTENCY_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	watcherInterval, err := osGetEnvDuration("WATCHER_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	watcherCooldown, err := osGetEnvDuration("WATCHER_COOLDOWN")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	watcherSuppress, err := osGetEnvDuration("WATCHER_SUPPRESS_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	watcherRequestTimeout, err := osGetEnvDuration("WATCHER_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMaxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMinConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			AtRiskSweepSchedule: osGetDefault("AT_RISK_SWEEP_SCHEDULE", defaultAtRiskSweepSchedule),
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			GRPCPort:         os.Getenv("GRPC_PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: dbMaxConns,
			MinConns: dbMinConns,
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
			JWTIssuer: os.Getenv("JWT_ISSUER"),
		},
		Storage: Storage{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          osGetDefault("S3_REGION", "us-east-1"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			PublicURL:       os.Getenv("S3_PUBLIC_URL"),
			UsePathStyle:    s3PathStyle,
		},
		Redis: Redis{
			Addr:           os.Getenv("REDIS_ADDR"),
			Password:       os.Getenv("REDIS_PASSWORD"),
			DB:             redisDB,
			IdempotencyTTL: durationOrDefault(idempotencyTTL, defaultIdempotencyTTL),
		},
		Kafka: Kafka{
			Brokers:            os.Getenv("KAFKA_BROKERS"),
			Topic:              os.Getenv("KAFKA_TOPIC"),
			NotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
			ConsumerGroup:      os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck:    os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: orderStatusChangedTimeout,
				},
			},
		},
		Watcher: Watcher{
			APIBaseURL:     os.Getenv("WATCHER_API_BASE_URL"),
			APIGRPCHost:    os.Getenv("WATCHER_API_GRPC_HOST"),
			Token:          os.Getenv("WATCHER_TOKEN"),
			Group:          os.Getenv("WATCHER_GROUP"),
			Interval:       durationOrDefault(watcherInterval, defaultWatcherInterval),
			Cooldown:       durationOrDefault(watcherCooldown, defaultWatcherCooldown),
			SuppressWindow: durationOrDefault(watcherSuppress, defaultWatcherSuppress),
			RequestTimeout: durationOrDefault(watcherRequestTimeout, 5*time.Second),
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if err := validateService(cfg); err != nil {
		return err
	}
	if err := validateWorker(cfg); err != nil {
		return err
	}
	return validateWatcher(cfg)
}

func validateService(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.GRPCPort == "" {
		return errors.New("GRPC_PORT is required")
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

	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if cfg.Storage.Endpoint == "" {
		return errors.New("S3_ENDPOINT is required")
	}
	if cfg.Storage.Bucket == "" {
		return errors.New("S3_BUCKET is required")
	}
	if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
		return errors.New("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Tasks.AtRiskSweepSchedule == "" {
		return errors.New("AT_RISK_SWEEP_SCHEDULE is required")
	}

	return nil
}

func validateWorker(cfg *Config) error {
	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Kafka.Handlers.OrderStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func validateWatcher(cfg *Config) error {
	if cfg.Watcher.APIBaseURL == "" {
		return errors.New("WATCHER_API_BASE_URL is required")
	}
	if cfg.Watcher.APIGRPCHost == "" {
		return errors.New("WATCHER_API_GRPC_HOST is required")
	}
	if cfg.Watcher.Token == "" {
		return errors.New("WATCHER_TOKEN is required")
	}
	// уведомления в kafka опциональны, без топика работает только лог
	if cfg.Kafka.NotificationsTopic != "" && cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required when KAFKA_NOTIFICATIONS_TOPIC is set")
	}
	if cfg.Kafka.NotificationsTopic != "" && cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required when KAFKA_NOTIFICATIONS_TOPIC is set")
	}
	return nil
}

func validateDatabase(db Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if db.MaxConns < 0 || db.MinConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS and POSTGRES_MIN_CONNS must not be negative")
	}
	if db.MaxConns > 0 && db.MinConns > db.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}
	return nil
}

func osGetDefault(s string, def string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return def
}

func durationOrDefault(d time.Duration, def time.Duration) time.Duration {
	if d == time.Duration(0) {
		return def
	}
	return d
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
