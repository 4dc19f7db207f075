package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/labelprint/internal/config"
	"github.com/five82/labelprint/internal/label"
	"github.com/five82/labelprint/internal/logging"
	"github.com/five82/labelprint/internal/paste"
	"github.com/five82/labelprint/internal/prefs"
	"github.com/five82/labelprint/internal/state"
	"github.com/five82/labelprint/internal/ui"
)

// Options configure a labelprint run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/labelprint/prefs.toml
	InputPath  string // file or "-" for stdin
	Printer    string // empty uses the remembered or first configured printer
	Range      string // "4", "2-7" or "2:7"; empty selects every row
	DryRun     bool
	TUI        bool
	LogLevel   string // overrides log_level from the config

	Out    io.Writer // defaults to os.Stdout
	ErrOut io.Writer // defaults to os.Stderr
}

// JobError reports a print job the service did not accept.
type JobError struct {
	Job state.Job
}

func (e *JobError) Error() string { return Message(e.Job.Err) }

func (e *JobError) Unwrap() error { return e.Job.Err }

// Run prints from the command line, or starts the terminal UI when
// opts.TUI is set, until the job completes or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	if opts.TUI {
		return runTUI(ctx, cfg, userPrefs, opts)
	}
	return runCLI(ctx, cfg, userPrefs, opts)
}

func runCLI(ctx context.Context, cfg config.Config, userPrefs prefs.Prefs, opts Options) error {
	log := logging.New(opts.ErrOut, cfg.LogLevel)

	printer, err := NewPrinter(cfg, WithStore(&state.Store{}), WithLogger(log))
	if err != nil {
		return fmt.Errorf("init printer: %w", err)
	}

	input := opts.InputPath
	if input == "" {
		input = "-"
	}
	text, err := paste.File(input)
	if err != nil {
		return err
	}
	labels := printer.Parse(text)
	log.WithFields(logrus.Fields{"input": input, "rows": len(labels)}).Debug("parsed input")

	first, last := 1, len(labels)
	if opts.Range != "" {
		if first, last, err = label.ParseRange(opts.Range); err != nil {
			return err
		}
	}

	name := strings.TrimSpace(opts.Printer)
	if name == "" {
		name = userPrefs.PreferredPrinter(cfg.Printers)
	}

	if opts.DryRun {
		_, body, err := printer.Prepare(labels, name, first, last)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(opts.Out, "%s\n", body)
		return err
	}

	job := printer.Print(ctx, name, labels, first, last)
	if job.Err != nil {
		return &JobError{Job: job}
	}
	fmt.Fprintf(opts.Out, "%s %d label(s) to %s, job %s\n", Message(nil), job.Labels, job.Printer, job.ID)

	if name != userPrefs.Printer {
		userPrefs.Printer = name
		if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
			log.WithError(err).Warn("could not remember printer")
		}
	}
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, userPrefs prefs.Prefs, opts Options) error {
	log, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := &state.Store{}
	printer, err := NewPrinter(cfg, WithStore(store), WithLogger(log))
	if err != nil {
		return fmt.Errorf("init printer: %w", err)
	}

	var text string
	if opts.InputPath != "" {
		if text, err = paste.File(opts.InputPath); err != nil {
			return err
		}
	}
	if opts.Printer != "" {
		userPrefs.Printer = opts.Printer
	}

	log.WithField("config", cfg.Path).Info("starting terminal ui")
	return ui.Run(ui.Options{
		Context:   ctx,
		Config:    cfg,
		Printer:   printer,
		Store:     store,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Text:      text,
		Describe:  Message,
		Log:       log,
	})
}
