package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/labelprint/internal/config"
	"github.com/five82/labelprint/internal/label"
	"github.com/five82/labelprint/internal/printreq"
	"github.com/five82/labelprint/internal/printsvc"
	"github.com/five82/labelprint/internal/state"
)

var (
	// ErrNothingToPrint is returned when the selected range is empty or invalid.
	ErrNothingToPrint = errors.New("nothing to print")
	// ErrNoPrinter is returned when no printer is selected.
	ErrNoPrinter = errors.New("no printer selected")
)

// Printer turns parsed labels into print jobs using one configuration.
type Printer struct {
	cfg     config.Config
	builder printreq.Builder
	store   *state.Store
	log     logrus.FieldLogger
	connect func(endpoint, proxy string) (printsvc.Poster, error)
	newID   func() string
}

// PrinterOption adjusts a Printer.
type PrinterOption func(*Printer)

// WithStore records every job in store.
func WithStore(store *state.Store) PrinterOption {
	return func(p *Printer) { p.store = store }
}

// WithLogger sets the logger for job events.
func WithLogger(log logrus.FieldLogger) PrinterOption {
	return func(p *Printer) {
		if log != nil {
			p.log = log
		}
	}
}

// WithPoster sends every job through poster instead of an HTTP client built
// from the configured endpoint.
func WithPoster(poster printsvc.Poster) PrinterOption {
	return func(p *Printer) {
		p.connect = func(string, string) (printsvc.Poster, error) { return poster, nil }
	}
}

// NewPrinter prepares the request builder for cfg. The HTTP client is
// created per job so a missing endpoint only fails when printing.
func NewPrinter(cfg config.Config, opts ...PrinterOption) (*Printer, error) {
	builder, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	p := &Printer{
		cfg:     cfg,
		builder: builder,
		log:     logrus.StandardLogger(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.connect == nil {
		p.connect = func(endpoint, proxy string) (printsvc.Poster, error) {
			return printsvc.NewClient(endpoint, proxy,
				printsvc.WithTimeout(cfg.RequestTimeout),
				printsvc.WithLogger(p.log),
			)
		}
	}
	return p, nil
}

// NewBuilder selects the request format for cfg.
func NewBuilder(cfg config.Config) (printreq.Builder, error) {
	switch cfg.Format {
	case config.FormatGraphQL:
		return printreq.GraphQL{Template: printreq.Template(cfg.Template)}, nil
	case config.FormatREST, "":
		if cfg.LabelMode == config.ModeSingle {
			return printreq.REST{TemplateID: cfg.TemplateID, SingleField: cfg.FieldNames["name"]}, nil
		}
		names := make(map[printreq.Field]string, len(printreq.Fields))
		for _, f := range printreq.Fields {
			names[f] = cfg.FieldNames[f.String()]
		}
		return printreq.REST{TemplateID: cfg.TemplateID, Mapping: printreq.NewMapping(names)}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.Format)
	}
}

// Config returns the configuration the printer was built with.
func (p *Printer) Config() config.Config { return p.cfg }

// Parse reads pasted text the way the configured label mode expects.
func (p *Printer) Parse(text string) []label.Label {
	if p.cfg.Format != config.FormatGraphQL && p.cfg.LabelMode == config.ModeSingle {
		return label.ParseLines(text)
	}
	return label.ParseText(text)
}

// Prepare selects rows first..last (1-based), adds the warm-up label when
// configured and serializes the request body.
func (p *Printer) Prepare(labels []label.Label, printer string, first, last int) ([]label.Label, []byte, error) {
	if strings.TrimSpace(printer) == "" {
		return nil, nil, ErrNoPrinter
	}
	selected := label.Select(labels, first, last)
	if len(selected) == 0 {
		return nil, nil, ErrNothingToPrint
	}
	batch := label.WithWarmUp(selected, p.cfg.WarmUp)
	body, err := p.builder.Build(batch, printer)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	return batch, body, nil
}

// Print submits rows first..last to printer and waits for the service.
// The job is recorded in the store whatever the outcome.
func (p *Printer) Print(ctx context.Context, printer string, labels []label.Label, first, last int) state.Job {
	job := state.Job{ID: p.newID(), Printer: printer, Started: time.Now()}
	job.Labels, job.Err = p.print(ctx, printer, labels, first, last)
	job.Finished = time.Now()

	entry := p.log.WithFields(logrus.Fields{
		"job":     job.ID,
		"printer": printer,
		"labels":  job.Labels,
		"format":  string(p.cfg.Format),
		"elapsed": job.Duration().String(),
	})
	if job.Err != nil {
		entry.WithError(job.Err).Error("print job failed")
	} else {
		entry.Info("print job accepted")
	}

	if p.store != nil {
		p.store.Record(job)
	}
	return job
}

func (p *Printer) print(ctx context.Context, printer string, labels []label.Label, first, last int) (int, error) {
	if err := p.cfg.Ready(); err != nil {
		return 0, err
	}
	batch, body, err := p.Prepare(labels, printer, first, last)
	if err != nil {
		return 0, err
	}
	endpoint, err := p.cfg.Endpoint()
	if err != nil {
		return 0, err
	}
	poster, err := p.connect(endpoint, p.cfg.Proxy)
	if err != nil {
		return 0, fmt.Errorf("init print client: %w", err)
	}
	p.log.WithField("body", string(body)).Debug("posting print request")
	if err := poster.Post(ctx, body); err != nil {
		return len(batch), err
	}
	return len(batch), nil
}
