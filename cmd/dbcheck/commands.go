package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/dbvalidate/pkg/config"
	"github.com/dmitrymomot/dbvalidate/pkg/datasource"
	"github.com/dmitrymomot/dbvalidate/pkg/dbrule"
	"github.com/dmitrymomot/dbvalidate/pkg/logger"
	"github.com/dmitrymomot/dbvalidate/pkg/validator"
)

// errCheckFailed is returned when the value failed the rule; the failure
// itself has already been printed.
var errCheckFailed = errors.New("check failed")

type appConfig struct {
	DB  datasource.Config
	Log logger.Config
}

type checkOptions struct {
	Table           string
	Column          string
	Field           string
	Value           string
	Connection      string
	Numeric         bool
	CaseInsensitive bool
	NotNull         []string
	EnvFiles        []string
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dbcheck",
		Short:         "Run database-backed validation rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newCheckCommand("unique", "Fail when the value is already present"))
	cmd.AddCommand(newCheckCommand("exists", "Fail when the value is not present"))
	return cmd
}

func newCheckCommand(rule, short string) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   rule,
		Short: short,
		Example: fmt.Sprintf(`  dbcheck %[1]s --table users --column email --value foo@bar.com
  dbcheck %[1]s --table users --column email --value FOO@bar.com --case-insensitive
  dbcheck %[1]s --table users --column id --value 42 --numeric --not-null country_id`, rule),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, rule, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "Table to look the value up in")
	cmd.Flags().StringVar(&opts.Column, "column", "", "Column to compare the value with")
	cmd.Flags().StringVar(&opts.Field, "field", "", "Field name used in messages (defaults to the column)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "Value to check")
	cmd.Flags().StringVar(&opts.Connection, "connection", "", "Connection name (defaults to DB_CONNECTION_NAME)")
	cmd.Flags().BoolVar(&opts.Numeric, "numeric", false, "Treat the value as an integer")
	cmd.Flags().BoolVarP(&opts.CaseInsensitive, "case-insensitive", "i", false, "Compare lower-cased values")
	cmd.Flags().StringSliceVar(&opts.NotNull, "not-null", nil, "Only consider rows where these columns are not null")
	cmd.Flags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "Load environment from these files instead of .env")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runCheck(cmd *cobra.Command, rule string, opts *checkOptions) error {
	ctx := cmd.Context()

	var cfg appConfig
	if err := config.Load(&cfg, config.WithEnvFiles(opts.EnvFiles...)); err != nil {
		return err
	}

	log := logger.New(logger.WithConfig(cfg.Log), logger.WithOutput(cmd.ErrOrStderr()))

	db, err := datasource.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "close database", logger.Error(err))
		}
	}()

	if err := datasource.Healthcheck(db.SQL)(ctx); err != nil {
		return err
	}

	src, err := datasource.New(
		datasource.WithConnection(cfg.DB.ConnectionName, db.Conn),
		datasource.WithLogger(log),
	)
	if err != nil {
		return err
	}

	reg := validator.NewRegistry()
	if err := dbrule.Register(reg, dbrule.New(src)); err != nil {
		return err
	}

	field := opts.Field
	if field == "" {
		field = opts.Column
	}

	arg, value, err := ruleArgument(opts)
	if err != nil {
		return err
	}
	fieldRule, err := reg.Build(rule, arg)
	if err != nil {
		return err
	}

	err = validator.Validate(ctx, map[string]any{field: value}, validator.For(field, fieldRule))
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		for _, e := range verrs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", e.Field, e.Message, e.Rule)
		}
		log.InfoContext(ctx, "check failed", logger.Field(field), logger.Rule(verrs[0].Rule), logger.Table(opts.Table))
		return errCheckFailed
	}
	if datasource.IsUndefinedTableError(err) || datasource.IsUndefinedColumnError(err) {
		return fmt.Errorf("%s.%s is not a valid lookup target: %w", opts.Table, opts.Column, err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

// ruleArgument builds the dbrule.Config matching the value type.
func ruleArgument(opts *checkOptions) (any, any, error) {
	if opts.Numeric {
		if opts.CaseInsensitive {
			return nil, nil, errors.New("--case-insensitive cannot be combined with --numeric")
		}
		n, err := strconv.ParseInt(opts.Value, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parse numeric value %q: %w", opts.Value, err)
		}
		return dbrule.Query(dbrule.Options[int64]{
			Table:           opts.Table,
			Column:          opts.Column,
			Connection:      opts.Connection,
			CaseInsensitive: opts.CaseInsensitive,
			Filter:          notNull[int64](opts.NotNull),
		}), n, nil
	}

	return dbrule.Query(dbrule.Options[string]{
		Table:           opts.Table,
		Column:          opts.Column,
		Connection:      opts.Connection,
		CaseInsensitive: opts.CaseInsensitive,
		Filter:          notNull[string](opts.NotNull),
	}), opts.Value, nil
}

func notNull[T dbrule.Value](columns []string) dbrule.FilterFunc[T] {
	if len(columns) == 0 {
		return nil
	}
	return func(_ context.Context, q datasource.Query, _ T, _ *validator.Field) error {
		for _, col := range columns {
			q.WhereNotNull(col)
		}
		return nil
	}
}
