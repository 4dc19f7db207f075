package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/labelprint/internal/config"
	"github.com/five82/labelprint/internal/label"
	"github.com/five82/labelprint/internal/logging"
	"github.com/five82/labelprint/internal/printreq"
	"github.com/five82/labelprint/internal/printsvc"
	"github.com/five82/labelprint/internal/state"
)

type fakePoster struct {
	mu     sync.Mutex
	bodies [][]byte
	err    error
}

func (f *fakePoster) Post(_ context.Context, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, append([]byte(nil), body...))
	return f.err
}

func (f *fakePoster) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

func restConfig() config.Config {
	return config.Config{
		Format:     config.FormatREST,
		PMBURL:     "http://pmb.example/v1/print_jobs",
		TemplateID: 6,
		LabelMode:  config.ModeStructured,
		FieldNames: map[string]string{"name": "cell_line", "date": "date"},
		Printers:   []string{"d304bc", "e367bc"},
	}
}

func newTestPrinter(t *testing.T, cfg config.Config, poster printsvc.Poster, store *state.Store) *Printer {
	t.Helper()
	p, err := NewPrinter(cfg, WithPoster(poster), WithStore(store), WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("NewPrinter returned error: %v", err)
	}
	p.newID = func() string { return "job-1" }
	return p
}

func TestNewBuilder(t *testing.T) {
	cfg := restConfig()
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder returned error: %v", err)
	}
	rest, ok := b.(printreq.REST)
	if !ok {
		t.Fatalf("builder = %T, want printreq.REST", b)
	}
	if rest.TemplateID != 6 || rest.Mapping[printreq.FieldName] != "cell_line" {
		t.Fatalf("builder = %+v", rest)
	}
	if _, ok := rest.Mapping[printreq.FieldBarcode]; ok {
		t.Fatalf("blank field_barcode should not be mapped")
	}

	cfg.LabelMode = config.ModeSingle
	b, _ = NewBuilder(cfg)
	if rest := b.(printreq.REST); rest.SingleField != "cell_line" {
		t.Fatalf("SingleField = %q, want cell_line", rest.SingleField)
	}

	cfg.Format = config.FormatGraphQL
	cfg.Template = `{"label":"{name}"}`
	b, _ = NewBuilder(cfg)
	if _, ok := b.(printreq.GraphQL); !ok {
		t.Fatalf("builder = %T, want printreq.GraphQL", b)
	}

	cfg.Format = "soap"
	if _, err := NewBuilder(cfg); err == nil {
		t.Fatalf("NewBuilder accepted unknown format")
	}
}

func TestPrinter_Parse(t *testing.T) {
	text := "Alice\t2024-01-01\n\nBob"

	p := newTestPrinter(t, restConfig(), &fakePoster{}, nil)
	got := p.Parse(text)
	if len(got) != 2 {
		t.Fatalf("Parse = %v, want 2 labels", got)
	}
	if d, ok := got[0].Date(); !ok || d != "2024-01-01" {
		t.Fatalf("first date = %q, %v", d, ok)
	}

	cfg := restConfig()
	cfg.LabelMode = config.ModeSingle
	p = newTestPrinter(t, cfg, &fakePoster{}, nil)
	got = p.Parse(text)
	if len(got) != 2 || got[0].Name() != "Alice\t2024-01-01" {
		t.Fatalf("single-mode Parse = %v", got)
	}
}

func TestPrinter_Prepare(t *testing.T) {
	labels := []label.Label{label.New("A"), label.New("B"), label.New("C")}

	cfg := restConfig()
	cfg.WarmUp = true
	p := newTestPrinter(t, cfg, &fakePoster{}, nil)

	batch, body, err := p.Prepare(labels, "d304bc", 2, 3)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if len(batch) != 3 || batch[0].Name() != "" || batch[1].Name() != "B" {
		t.Fatalf("batch = %v, want warm-up, B, C", batch)
	}
	if !bytes.Contains(body, []byte(`"printer_name":"d304bc"`)) {
		t.Fatalf("body = %s", body)
	}

	if _, _, err := p.Prepare(labels, "d304bc", 3, 2); !errors.Is(err, ErrNothingToPrint) {
		t.Fatalf("inverted range error = %v, want ErrNothingToPrint", err)
	}
	if _, _, err := p.Prepare(labels, "d304bc", 1, 4); !errors.Is(err, ErrNothingToPrint) {
		t.Fatalf("range past end error = %v, want ErrNothingToPrint", err)
	}
	if _, _, err := p.Prepare(labels, " ", 1, 1); !errors.Is(err, ErrNoPrinter) {
		t.Fatalf("blank printer error = %v, want ErrNoPrinter", err)
	}
}

func TestPrinter_PrintRecordsOutcome(t *testing.T) {
	poster := &fakePoster{}
	store := &state.Store{}
	p := newTestPrinter(t, restConfig(), poster, store)

	labels := []label.Label{label.NewWithDate("Alice", "1 Jan"), label.New("Bob")}
	job := p.Print(context.Background(), "d304bc", labels, 1, 2)
	if job.Err != nil {
		t.Fatalf("Print error = %v", job.Err)
	}
	if job.ID != "job-1" || job.Labels != 2 || job.Printer != "d304bc" {
		t.Fatalf("job = %+v", job)
	}
	if poster.calls() != 1 {
		t.Fatalf("Post called %d times, want 1", poster.calls())
	}
	want := `{"data":{"attributes":{"printer_name":"d304bc","label_template_id":6,"labels":{"body":[{"label":{"cell_line":"Alice","date":"1 Jan"}},{"label":{"cell_line":"Bob"}}]}}}}`
	if got := string(poster.bodies[0]); got != want {
		t.Fatalf("body = %s\nwant  %s", got, want)
	}

	snap := store.Snapshot()
	if len(snap.Jobs) != 1 || snap.Printed != 2 {
		t.Fatalf("store = %+v, want one job with 2 labels", snap)
	}
}

func TestPrinter_PrintMissingConfigSkipsPost(t *testing.T) {
	cfg := restConfig()
	cfg.TemplateID = 0
	poster := &fakePoster{}
	store := &state.Store{}
	p := newTestPrinter(t, cfg, poster, store)

	job := p.Print(context.Background(), "d304bc", []label.Label{label.New("A")}, 1, 1)
	if !errors.Is(job.Err, config.ErrMissing) {
		t.Fatalf("Print error = %v, want ErrMissing", job.Err)
	}
	if poster.calls() != 0 {
		t.Fatalf("Post called with missing config")
	}
	if got := Message(job.Err); got != "Missing config for template_id." {
		t.Fatalf("Message = %q", got)
	}
	if store.Snapshot().LastError == nil {
		t.Fatalf("failed job not recorded")
	}
}

func TestPrinter_PrintServiceErrors(t *testing.T) {
	poster := &fakePoster{err: &printsvc.StatusError{Code: 500, Body: "boom"}}
	p := newTestPrinter(t, restConfig(), poster, nil)

	job := p.Print(context.Background(), "d304bc", []label.Label{label.New("A")}, 1, 1)
	var status *printsvc.StatusError
	if !errors.As(job.Err, &status) || status.Code != 500 || status.Body != "boom" {
		t.Fatalf("Print error = %v, want StatusError{500, boom}", job.Err)
	}
	if job.Labels != 1 {
		t.Fatalf("Labels = %d, want 1", job.Labels)
	}
	if msg := Message(job.Err); !strings.HasPrefix(msg, "There was an error when trying to print: ") || !strings.Contains(msg, "500") {
		t.Fatalf("Message = %q", msg)
	}
}

func TestPrinter_Submit(t *testing.T) {
	poster := &fakePoster{err: printsvc.ErrServiceUnreachable}
	p := newTestPrinter(t, restConfig(), poster, nil)

	labels := []label.Label{label.New("A")}
	done := p.Submit(context.Background(), "d304bc", labels, 1, 1)
	labels[0] = label.New("changed")

	select {
	case job := <-done:
		if !errors.Is(job.Err, printsvc.ErrServiceUnreachable) {
			t.Fatalf("job error = %v, want ErrServiceUnreachable", job.Err)
		}
		if !bytes.Contains(poster.bodies[0], []byte(`"cell_line":"A"`)) {
			t.Fatalf("Submit should copy labels, body = %s", poster.bodies[0])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not deliver a result")
	}
	if _, ok := <-done; ok {
		t.Fatal("Submit channel should be closed after one result")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "Request sent."},
		{ErrNothingToPrint, "Nothing to print."},
		{ErrNoPrinter, "No printer selected."},
		{&config.MissingError{Key: "print_service"}, "Missing config for print_service."},
		{errors.New("dial tcp: refused"), "There was an error when trying to print: dial tcp: refused"},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
