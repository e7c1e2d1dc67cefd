package sql

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"

	"github.com/sllt/sqltask/pkg/sqltask/config"
)

const (
	dialectMySQL    = "mysql"
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"

	defaultMySQLPort    = "3306"
	defaultPostgresPort = "5432"
	defaultSSLMode      = "disable"
	defaultCharset      = "utf8mb4"
	defaultMaxIdleConn  = 2
)

var (
	errUnsupportedDialect = errors.New("unsupported sql dialect")
	errInvalidDBConfig    = errors.New("invalid database config")
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = validator.New(validator.WithRequiredStructEnabled())

// DBConfig holds everything needed to reach one database.
type DBConfig struct {
	Dialect         string `validate:"required,oneof=mysql postgres sqlite"`
	HostName        string `validate:"required_unless=Dialect sqlite"`
	User            string
	Password        string
	Port            string
	Database        string `validate:"required"`
	SSLMode         string
	Charset         string
	MaxIdleConn     int `validate:"gte=0"`
	MaxOpenConn     int `validate:"gte=0"`
	ConnMaxLifetime time.Duration
}

// NewDBConfig reads the DB_* keys of cfg. Unknown dialects are kept verbatim so Validate can report them.
func NewDBConfig(cfg config.Config) *DBConfig {
	dialect := cfg.Get("DB_DIALECT")
	if d, err := normalizeDialect(dialect); err == nil {
		dialect = d
	}

	c := &DBConfig{
		Dialect:     dialect,
		HostName:    cfg.Get("DB_HOST"),
		User:        cfg.Get("DB_USER"),
		Password:    cfg.Get("DB_PASSWORD"),
		Port:        cfg.GetOrDefault("DB_PORT", defaultPort(dialect)),
		Database:    cfg.Get("DB_NAME"),
		SSLMode:     cfg.GetOrDefault("DB_SSL_MODE", defaultSSLMode),
		Charset:     cfg.GetOrDefault("DB_CHARSET", defaultCharset),
		MaxIdleConn: intOrDefault(cfg.Get("DB_MAX_IDLE_CONNECTION"), defaultMaxIdleConn),
		MaxOpenConn: intOrDefault(cfg.Get("DB_MAX_OPEN_CONNECTION"), 0),
	}

	if lifetime, err := time.ParseDuration(cfg.Get("DB_CONNECTION_MAX_LIFETIME")); err == nil {
		c.ConnMaxLifetime = lifetime
	}

	return c
}

// Validate normalizes the dialect and checks the config is complete for it.
func (c *DBConfig) Validate() error {
	d, err := normalizeDialect(c.Dialect)
	if err != nil {
		return err
	}

	if c.Dialect != d {
		c.Dialect = d
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errInvalidDBConfig, err)
	}

	return nil
}

func normalizeDialect(dialect string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case dialectMySQL, "mariadb":
		return dialectMySQL, nil
	case dialectPostgres, "postgresql", "supabase", "cockroachdb":
		return dialectPostgres, nil
	case dialectSQLite, "sqlite3":
		return dialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, dialect)
	}
}

func defaultPort(dialect string) string {
	switch dialect {
	case dialectMySQL:
		return defaultMySQLPort
	case dialectPostgres:
		return defaultPostgresPort
	default:
		return ""
	}
}

func intOrDefault(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

// driverName is the database/sql driver registered for the dialect.
func (c *DBConfig) driverName() string {
	return c.Dialect
}

func (c *DBConfig) dataSourceName() string {
	switch c.Dialect {
	case dialectMySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.HostName, c.Port)
		cfg.DBName = c.Database
		cfg.ParseTime = true
		cfg.Params = map[string]string{"charset": c.Charset}

		return cfg.FormatDSN()
	case dialectPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.HostName, c.Port),
			Path:     "/" + c.Database,
			RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
		}

		return u.String()
	default:
		return c.Database
	}
}
