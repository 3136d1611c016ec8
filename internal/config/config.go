package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPass     string
	SQLitePath string

	RedisAddr     string
	RedisDB       int
	RedisPassword string

	IdempTTLSecs int

	JWTSecret       string
	SessionTTLHours int
}

var defaults = map[string]any{
	"APP_PORT":                "8080",
	"DB_DRIVER":               "mysql",
	"DB_HOST":                 "mysql",
	"DB_NAME":                 "loans",
	"DB_USER":                 "loans",
	"DB_PASS":                 "loans",
	"SQLITE_PATH":             "loans.db",
	"REDIS_ADDR":              "redis:6379",
	"REDIS_DB":                0,
	"REDIS_PASSWORD":          "",
	"IDEMPOTENCY_TTL_SECONDS": 300,
	"JWT_SECRET":              "",
	"SESSION_TTL_HOURS":       24,
}

// Load reads the environment, optionally layered over the file named by
// CONFIG_FILE (any format viper understands). Environment wins.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	if f := v.GetString("CONFIG_FILE"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", f, err)
		}
	}

	c := &Config{
		AppPort:         v.GetString("APP_PORT"),
		DBDriver:        v.GetString("DB_DRIVER"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBName:          v.GetString("DB_NAME"),
		DBUser:          v.GetString("DB_USER"),
		DBPass:          v.GetString("DB_PASS"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisDB:         v.GetInt("REDIS_DB"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		IdempTTLSecs:    v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
	}
	if c.DBPort == "" {
		switch c.DBDriver {
		case "postgres":
			c.DBPort = "5432"
		default:
			c.DBPort = "3306"
		}
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql", "postgres":
		if c.DBHost == "" || c.DBPort == "" || c.DBName == "" || c.DBUser == "" {
			return errors.New("missing database config (DB_HOST/PORT/NAME/USER)")
		}
		if _, err := net.LookupPort("tcp", c.DBPort); err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", c.DBPort, err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql|postgres|sqlite)", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.SessionTTLHours <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }
func (c *Config) SessionTTL() time.Duration     { return time.Duration(c.SessionTTLHours) * time.Hour }

func (c *Config) dbAddr() string { return net.JoinHostPort(c.DBHost, c.DBPort) }

// DSN is the gorm connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.postgresURL(url.Values{"sslmode": {"disable"}, "TimeZone": {"UTC"}})
	case "sqlite":
		return c.SQLitePath
	default:
		// parseTime needed for DATE/DATETIME scanning
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
			c.DBUser, c.DBPass, c.dbAddr(), c.DBName)
	}
}

// MigrateURL is the golang-migrate database URL. SQLite has no migrate URL;
// its schema is created with gorm AutoMigrate.
func (c *Config) MigrateURL() (string, error) {
	userinfo := url.UserPassword(c.DBUser, c.DBPass)
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("mysql://%s@tcp(%s)/%s?multiStatements=true", userinfo.String(), c.dbAddr(), c.DBName), nil
	case "postgres":
		return c.postgresURL(url.Values{"sslmode": {"disable"}}), nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", c.DBDriver)
	}
}

func (c *Config) postgresURL(q url.Values) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.dbAddr(),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}
