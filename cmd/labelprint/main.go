package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/labelprint/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (default ~/.config/labelprint/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences path (default ~/.config/labelprint/prefs.toml)")
	input := flag.String("input", "", "file of tab-separated rows, or - for stdin (default stdin)")
	printer := flag.String("printer", "", "printer name (default last used, then first configured)")
	rows := flag.String("range", "", "rows to print, e.g. 4 or 2-7 (default all)")
	dryRun := flag.Bool("dry-run", false, "write the request body to stdout instead of posting it")
	tui := flag.Bool("tui", false, "start the terminal UI")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides log_level)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		InputPath:  *input,
		Printer:    *printer,
		Range:      *rows,
		DryRun:     *dryRun,
		TUI:        *tui,
		LogLevel:   *logLevel,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "labelprint: %v\n", err)
		return 1
	}
	return 0
}
