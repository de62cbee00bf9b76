package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Stockit StockitConfig
	Jobs    JobsConfig
}

type AppConfig struct {
	Env            string `envconfig:"DONATIONS_APP_ENV" default:"dev"`
	HTTPPort       string `envconfig:"DONATIONS_HTTP_PORT" default:"8080"`
	LogLevel       string `envconfig:"DONATIONS_LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"DONATIONS_LOG_FORMAT" default:"json"`
	MigrateOnStart bool   `envconfig:"DONATIONS_MIGRATE_ON_START" default:"false"`
}

type DBConfig struct {
	DSN string `envconfig:"DONATIONS_DB_DSN"`

	Host     string `envconfig:"DONATIONS_DB_HOST"`
	Port     int    `envconfig:"DONATIONS_DB_PORT" default:"5432"`
	User     string `envconfig:"DONATIONS_DB_USER"`
	Password string `envconfig:"DONATIONS_DB_PASSWORD"`
	Name     string `envconfig:"DONATIONS_DB_NAME"`
	SSLMode  string `envconfig:"DONATIONS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DONATIONS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DONATIONS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DONATIONS_DB_CONN_MAX_LIFETIME" default:"1h"`
}

// RedisConfig enables the stockit idempotency cache. An empty URL disables it.
type RedisConfig struct {
	URL     string        `envconfig:"DONATIONS_REDIS_URL"`
	LinkTTL time.Duration `envconfig:"DONATIONS_REDIS_LINK_TTL" default:"24h"`
}

// KafkaConfig enables order events. Without brokers events are dropped.
type KafkaConfig struct {
	Brokers           []string `envconfig:"DONATIONS_KAFKA_BROKERS"`
	OrderChangedTopic string   `envconfig:"DONATIONS_KAFKA_ORDER_CHANGED_TOPIC" default:"donations.order_state_changed"`
}

type StockitConfig struct {
	BaseURL string        `envconfig:"DONATIONS_STOCKIT_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"DONATIONS_STOCKIT_API_KEY"`
	Timeout time.Duration `envconfig:"DONATIONS_STOCKIT_TIMEOUT" default:"10s"`
}

type JobsConfig struct {
	PruneSpec           string `envconfig:"DONATIONS_JOBS_PRUNE_SPEC" default:"0 */15 * * * *"`
	PruneBatch          int    `envconfig:"DONATIONS_JOBS_PRUNE_BATCH" default:"100"`
	SyncIssueReportSpec string `envconfig:"DONATIONS_JOBS_SYNC_ISSUE_REPORT_SPEC" default:"0 * * * * *"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if strings.TrimSpace(cfg.Stockit.BaseURL) == "" {
		return Config{}, errors.New("stockit base url is required")
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDBConfig reads only the database section, for tools that need nothing else.
func LoadDBConfig() (DBConfig, error) {
	_ = godotenv.Load()

	var db DBConfig
	if err := envconfig.Process("", &db); err != nil {
		return DBConfig{}, fmt.Errorf("parsing db config: %w", err)
	}
	if err := db.ensureDSN(); err != nil {
		return DBConfig{}, err
	}
	return db, nil
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return errors.New("database dsn or host, user and name are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}
