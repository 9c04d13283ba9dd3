package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
	defaultMaxRetry           = 1
)

// Connection splits reads from writes. Units of work and row locks always go through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one database server as configured for the read or write role.
type Endpoint struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	read := config.DB.Postgres.Read
	write := config.DB.Postgres.Write

	return &Connection{
		Read: mustConnect(config, Endpoint{
			Role: "read", Host: read.Host, Port: read.Port, Username: read.Username, Password: read.Password,
			Name: getDBName(config, read.Name), Timezone: read.Timezone, SSLMode: read.SSLMode,
		}),
		Write: mustConnect(config, Endpoint{
			Role: "write", Host: write.Host, Port: write.Port, Username: write.Username, Password: write.Password,
			Name: getDBName(config, write.Name), Timezone: write.Timezone, SSLMode: write.SSLMode,
		}),
	}
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// getDBName returns the database name with prefix if configured
func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DSN renders the lib/pq connection URL for e.
func (e Endpoint) DSN() string {
	query := url.Values{}

	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func mustConnect(config *config.Config, endpoint Endpoint) *sqlx.DB {
	maxRetry := max(config.DB.Postgres.MaxRetry, defaultMaxRetry)
	wait := time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second

	db, err := Connect(context.Background(), endpoint, maxRetry, wait)
	if err != nil {
		log.Fatal().Err(err).Str("name", endpoint.Role).Msg("Failed to connect to database")
	}

	return db
}

// Connect dials endpoint up to maxRetry times, waiting between attempts.
func Connect(ctx context.Context, endpoint Endpoint, maxRetry int, wait time.Duration) (*sqlx.DB, error) {
	var err error

	for attempt := 1; attempt <= maxRetry; attempt++ {
		var db *sqlx.DB

		db, err = sqlx.ConnectContext(ctx, "postgres", endpoint.DSN())
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			log.Info().
				Str("name", endpoint.Role).
				Str("host", endpoint.Host).
				Str("port", endpoint.Port).
				Str("dbName", endpoint.Name).
				Msg("Connected to database")

			return db, nil
		}

		log.Error().
			Err(err).
			Str("name", endpoint.Role).
			Str("host", endpoint.Host).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		if attempt == maxRetry {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connecting to %s database: %w", endpoint.Role, ctx.Err())
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("connecting to %s database after %d attempts: %w", endpoint.Role, maxRetry, err)
}
