package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Connection records a data source connection name.
func Connection(name string) slog.Attr {
	return slog.String("connection", name)
}

// Table records a table name.
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Field records the name of the field under validation.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records a validation rule identifier.
func Rule(id string) slog.Attr {
	return slog.String("rule", id)
}

// Query groups an executed statement with its timing. Only the number of
// arguments is recorded, never their values.
func Query(sql string, args int, took time.Duration) slog.Attr {
	return slog.Group("query",
		slog.String("sql", sql),
		slog.Int("args", args),
		slog.Duration("duration", took),
	)
}
