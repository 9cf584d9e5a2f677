package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rdrkr/contribution-writer/internal/config"
	cwErrors "github.com/rdrkr/contribution-writer/internal/errors"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	versionInfo := config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	app := NewDefaultApp(versionInfo)

	if err := app.Config.ParseFlags(); err != nil {
		if cwErrors.Is(err, flag.ErrHelp) {
			app.exit(0)
		} else {
			_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
			app.exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-c
		fmt.Printf("\nReceived signal %v, stopping contribwriter...\n", sig)

		// Cancel the context to signal graceful shutdown
		cancel()

		// Give the run loop a moment to notice the cancellation; if it
		// doesn't stop in time, force cleanup and exit
		time.Sleep(5 * time.Second)

		select {
		case <-ctx.Done():
			// Context was properly canceled, main will handle cleanup
			return
		default:
			app.CleanupOnSignal()
			app.exit(0)
		}
	}()

	if err := app.Run(ctx); err != nil {
		// Context cancellation is the normal signal shutdown path, not an error
		if !cwErrors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
			_ = app.Close()
			app.exit(1)
		}
	}

	// Print summary only after a real writing run (not for -n, -logo or -version)
	if !app.Config.ShowLogo && !app.Config.Version && !app.Config.DryRun && app.Writer != nil {
		app.Writer.PrintSummary()
	}
	_ = app.Close()
}
