package app

import (
	"context"

	"github.com/five82/labelprint/internal/label"
	"github.com/five82/labelprint/internal/state"
)

// Submit runs Print on its own goroutine and delivers exactly one job on the
// returned channel. The channel is buffered so an abandoned result never
// blocks the goroutine.
func (p *Printer) Submit(ctx context.Context, printer string, labels []label.Label, first, last int) <-chan state.Job {
	done := make(chan state.Job, 1)
	rows := append([]label.Label(nil), labels...)
	go func() {
		defer close(done)
		done <- p.Print(ctx, printer, rows, first, last)
	}()
	return done
}
