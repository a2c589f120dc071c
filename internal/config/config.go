package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// PlaceholderPassword is only used when ENVIRONMENT=local and DB_PASS is unset.
const PlaceholderPassword = "change-me-local-only"

// Config holds all application configuration. It is built once in main and
// passed down explicitly.
type Config struct {
	Database    DatabaseConfig
	HTTP        HTTPConfig
	AMQP        AMQPConfig
	ServiceName string
	Environment string
}

// DatabaseConfig describes how to reach the relational store.
type DatabaseConfig struct {
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	SSLMode        string
	ConnectTimeout time.Duration
	MaxOpenConns   int
	MaxIdleConns   int
}

type HTTPConfig struct {
	Port string
}

type AMQPConfig struct {
	URL          string // empty disables audit publishing
	LogsExchange string
}

// Load reads configuration from environment variables. DB_PASS has no
// built-in value outside the local environment.
func Load() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "local")

	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	timeoutSecs, err := getEnvInt("DB_CONNECT_TIMEOUT", 5)
	if err != nil {
		return nil, err
	}
	maxOpen, err := getEnvInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getEnvInt("DB_MAX_IDLE_CONNS", 0)
	if err != nil {
		return nil, err
	}

	password, ok := os.LookupEnv("DB_PASS")
	if !ok || password == "" {
		if environment != "local" {
			return nil, fmt.Errorf("DB_PASS environment variable must be set when ENVIRONMENT=%s", environment)
		}
		log.Printf("warning: DB_PASS not set; using local placeholder password")
		password = PlaceholderPassword
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "postgres"),
			Port:           port,
			Name:           getEnv("DB_NAME", "showroom_db"),
			User:           getEnv("DB_USER", "showroom_user"),
			Password:       password,
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: time.Duration(timeoutSecs) * time.Second,
			MaxOpenConns:   maxOpen,
			MaxIdleConns:   maxIdle,
		},
		HTTP: HTTPConfig{
			Port: getEnv("PORT", "8080"),
		},
		AMQP: AMQPConfig{
			URL:          getEnv("AMQP_URL", ""),
			LogsExchange: getEnv("LOGS_EXCHANGE", "logs.events"),
		},
		ServiceName: getEnv("SERVICE_NAME", "user-lookup-service"),
		Environment: environment,
	}
	return cfg, nil
}

// DSN renders the lib/pq key/value connection string.
func (d DatabaseConfig) DSN() string {
	parts := []string{
		"host=" + quoteDSNValue(d.Host),
		"port=" + strconv.Itoa(d.Port),
		"dbname=" + quoteDSNValue(d.Name),
		"user=" + quoteDSNValue(d.User),
		"password=" + quoteDSNValue(d.Password),
		"sslmode=" + quoteDSNValue(d.SSLMode),
	}
	if d.ConnectTimeout > 0 {
		secs := int(d.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		parts = append(parts, "connect_timeout="+strconv.Itoa(secs))
	}
	return strings.Join(parts, " ")
}

// String returns a representation safe for logs.
func (c *Config) String() string {
	amqp := "disabled"
	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err == nil {
			amqp = u.Redacted()
		} else {
			amqp = "***"
		}
	}
	return fmt.Sprintf("Config{DB: %s@%s:%d/%s, HTTP: :%s, AMQP: %s, Env: %s, Password: *** (masked) ***}",
		c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name, c.HTTP.Port, amqp, c.Environment)
}

func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}
