package datasource

import "time"

type Config struct {
	Driver            string        `env:"DB_DRIVER" envDefault:"sqlite"`          // Driver is "postgres" or "sqlite".
	DSN               string        `env:"DB_DSN,required"`                        // DSN is the connection string or sqlite file path.
	MaxOpenConns      int32         `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections to the database.
	MaxIdleConns      int32         `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns is the minimum number of idle connections kept by the pool.
	HealthCheckPeriod time.Duration `env:"DB_HEALTHCHECK_PERIOD" envDefault:"1m"`  // HealthCheckPeriod is the period between health checks.
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"` // MaxConnIdleTime is the maximum amount of time a connection may be idle to be reused.
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`  // MaxConnLifetime is the maximum amount of time a connection may be reused.

	RetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of attempts to connect to the database.
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base delay between attempts.

	MigrationsPath string `env:"DB_MIGRATIONS_PATH"`                      // MigrationsPath is applied on Open when set.
	ConnectionName string `env:"DB_CONNECTION_NAME" envDefault:"primary"` // ConnectionName registers the handle under this name.
}
