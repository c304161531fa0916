// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers that keep key names consistent across the data
// source, the validation rules and the command line tool.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithConfig(cfg.Log),
//	    logger.WithAttr(slog.String("service", "dbcheck")),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "check finished",
//	    logger.Field("email"),
//	    logger.Rule("database.unique"),
//	    logger.Error(err),
//	)
//
// # Configuration
//
//   - WithFormat – text or json; invalid formats panic at startup.
//   - WithLevel / WithConfig – minimum level, from code or environment.
//   - WithOutput – destination writer, stderr by default.
//   - WithAttr – static attributes attached to every record.
//
// Error returns an empty attribute for a nil error, which slog drops, so it
// can be passed unconditionally.
package logger
