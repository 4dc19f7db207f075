// Package app wires configuration, parsing, request building and the print
// service together for both the command line and the terminal UI.
//
// # Print flow
//
//	paste.File / paste.Clipboard
//	       │
//	       ▼
//	Printer.Parse ─▶ []label.Label
//	       │ rows first..last (1-based)
//	       ▼
//	Printer.Prepare ─▶ label.Select ─▶ label.WithWarmUp ─▶ printreq.Builder
//	       │
//	       ▼
//	Printer.Print ─▶ printsvc.Client.Post ─▶ state.Job ─▶ state.Store
//
// Print checks the configuration before anything is built, so a missing
// endpoint or template id never reaches the network. Every job, failed or
// not, is logged with its id and recorded in the store.
//
// Submit runs Print on a goroutine and returns a channel that receives the
// single resulting job. The terminal UI waits on it from a Bubble Tea
// command so the interface keeps redrawing while the service responds.
//
// Message converts print errors into the short sentences shown to the
// operator ("Nothing to print.", "Missing config for pmb_url.").
//
// # Logging
//
// The command line logs to stderr. The terminal UI owns the terminal, so it
// logs to the configured log_file, which the log view tails.
package app
