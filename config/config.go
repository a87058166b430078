package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"dev"`
	HTTPPort        string        `envconfig:"PORT" default:"3000"`
	GRPCPort        string        `envconfig:"GRPC_PORT" default:"50051"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LOGGER_LEVEL" default:"info"`
	Encoding          string `envconfig:"LOGGER_ENCODING" default:"json"`
	DisableCaller     bool   `envconfig:"LOGGER_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOGGER_DISABLE_STACKTRACE" default:"true"`
}

type PostgresConfig struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	MaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"1m"`
}

// RedisConfig enables the product list cache when Addr is set.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

// KafkaConfig enables catalog change events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"catalog.events"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"catalog-service"`
}

// LoadEnv reads every section from the environment. Keys are not prefixed by section name.
func LoadEnv() (*Config, error) {
	cfg := &Config{}
	sections := []interface{}{
		&cfg.Server,
		&cfg.Logger,
		&cfg.Postgres,
		&cfg.Redis,
		&cfg.Kafka,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, err
		}
	}
	if cfg.Postgres.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is empty")
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}
