// Package dbrule provides the database-backed field rules "unique" and
// "exists" for the validator package.
//
// A rule is configured in one of two ways:
//
//   - Query: look the value up in a table column, optionally folding case and
//     narrowing the lookup with a filter hook.
//   - Check: call a custom function that decides on its own.
//
// Both configurations produce a validator.FieldRule. A failed check is
// reported on the field (rule "database.unique" or "database.exists"); it is
// never returned as an error. Errors returned by the data source, a filter
// hook, or a check function abort validation and reach the caller unchanged.
// Fields that already failed an earlier rule are skipped without a query.
//
// # Usage
//
//	src, _ := datasource.New(datasource.WithConnection("primary", datasource.Pgx(pool)))
//	rules := dbrule.New(src)
//
//	err := validator.Validate(ctx, input,
//	    validator.For("email",
//	        validator.Required(),
//	        dbrule.Unique(rules, dbrule.Query(dbrule.Options[string]{
//	            Table:           "users",
//	            Column:          "email",
//	            CaseInsensitive: true,
//	        })),
//	    ),
//	    validator.For("country_id",
//	        dbrule.Exists(rules, dbrule.Query(dbrule.Options[int64]{Table: "countries", Column: "id"})),
//	    ),
//	)
//
// The rules can also be registered by name:
//
//	reg := validator.NewRegistry()
//	_ = dbrule.Register(reg, rules)
//	rule, err := reg.Build("unique", dbrule.Query(dbrule.Options[string]{Table: "users", Column: "email"}))
//
// # Case folding
//
// Case-insensitive lookups compare the folded column with the folded bound
// value; the folding function comes from the connection's Dialect. Backends
// that already compare case-insensitively by default give the same answer
// with and without the option.
package dbrule
