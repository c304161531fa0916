package datasource

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Database is an opened backend: the Conn used for queries and a database/sql
// view of the same connections for tooling such as migrations.
type Database struct {
	Conn Conn
	SQL  *sql.DB

	closers []func() error
}

// Close releases every handle opened by Open.
func (d *Database) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects to the backend named by cfg.Driver and, when
// cfg.MigrationsPath is set, brings its schema up to date.
func Open(ctx context.Context, cfg Config, log migrationLogger) (*Database, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *Database
	switch d.Name() {
	case "postgres":
		pool, err := ConnectPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		sqlDB := stdlib.OpenDBFromPool(pool)
		db = &Database{
			Conn: Pgx(pool),
			SQL:  sqlDB,
			closers: []func() error{
				func() error { pool.Close(); return nil },
				sqlDB.Close,
			},
		}
	default:
		sqlDB, err := OpenSQLite(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = &Database{
			Conn:    SQL(sqlDB, SQLite),
			SQL:     sqlDB,
			closers: []func() error{sqlDB.Close},
		}
	}

	if cfg.MigrationsPath != "" {
		if err := MigrateDir(ctx, db.SQL, d, cfg.MigrationsPath, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// ConnectPostgres establishes a pgx connection pool, retrying with a linear
// backoff until the database answers a ping or the attempts run out.
func ConnectPostgres(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		if i > 0 {
			if err := sleep(ctx, time.Duration(i)*cfg.RetryInterval); err != nil {
				return nil, errors.Join(ErrFailedToOpenDBConnection, err)
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			lastErr = err
			continue
		}
		// Ping catches authentication and permission problems the pool defers.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// PoolConfig parses cfg.DSN into a pgxpool config. Pool settings left at zero
// keep pgxpool's defaults.
func PoolConfig(cfg Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = min(cfg.MaxIdleConns, poolConfig.MaxConns)
	}
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	return poolConfig, nil
}

// OpenSQLite opens a database with the pure-Go modernc driver.
// In-memory databases are limited to one connection since every
// connection would otherwise see its own empty database.
func OpenSQLite(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}

	if strings.Contains(cfg.DSN, ":memory:") || strings.Contains(cfg.DSN, "mode=memory") {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxOpenConns))
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(int(cfg.MaxIdleConns))
	}
	if cfg.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return db, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
