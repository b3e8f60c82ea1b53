package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"bookledger/internal/config"
)

// driverName is what sqlx uses to pick its bind style; pgx binds like postgres.
const driverName = "pgx"

var sqlOpen = sql.Open

// BuildPostgresDSN resolves the connection string for the document store.
// A configured URI wins and c.Name, when set, replaces its database path, so a
// shared server URI can be pointed at the lending database. Without a URI the
// DSN is assembled from host, port, user and name.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	u, err := baseURL(c)
	if err != nil {
		return "", err
	}

	if c.Name != "" {
		u.Path = "/" + c.Name
	}
	if strings.Trim(u.Path, "/") == "" {
		return "", fmt.Errorf("invalid database config: database name is required")
	}

	q := u.Query()
	if c.SSLMode != "" && q.Get("sslmode") == "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func baseURL(c config.DatabaseConfig) (*url.URL, error) {
	if c.URI == "" {
		if c.Host == "" || c.Port == "" || c.User == "" {
			return nil, fmt.Errorf("invalid database config: DB_URI, or DB_HOST, DB_PORT and DB_USER are required")
		}
		u := &url.URL{Scheme: "postgres", Host: c.Host + ":" + c.Port, User: url.User(c.User)}
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		return u, nil
	}

	u, err := url.Parse(c.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid database uri: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return nil, fmt.Errorf("invalid database uri: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid database uri: host is required")
	}
	return u, nil
}

// Target describes where c points as host/database, without credentials. Used in logs.
func Target(c config.DatabaseConfig) string {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return c.Host
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return c.Host
	}
	return u.Host + u.Path
}

// Open connects to the document store through the otelsql-wrapped pgx driver,
// applies the pool settings and pings the server within 5 seconds.
func Open(ctx context.Context, c config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	traced, err := otelsql.Register(driverName,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(traced, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping %s: %w", Target(c), err)
	}

	return sqlx.NewDb(db, driverName), nil
}
