// Command dbcheck runs a database-backed unique or exists check against a
// configured database, the same way the dbrule package does inside a service.
//
//	DB_DRIVER=postgres DB_DSN=postgres://... dbcheck unique --table users --column email --value foo@bar.com
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errCheckFailed):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
