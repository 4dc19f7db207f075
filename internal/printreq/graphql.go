package printreq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/labelprint/internal/label"
)

// PrintMutation is the GraphQL document sent with every SPrint request.
const PrintMutation = "mutation ($printer:String!, $request:PrintRequest!) { print(printer: $printer, printRequest: $request) { jobId } }"

// nullText replaces {date} for labels without a date column. The service
// receives the literal text null in that position.
const nullText = "null"

// Template is raw layout text containing {barcode}, {name} and {date}
// placeholders. It is loaded once and shared read-only.
type Template string

// Fill substitutes the label's values into the template.
func (t Template) Fill(l label.Label) string {
	date, ok := l.Date()
	if !ok {
		date = nullText
	}
	return strings.NewReplacer(
		"{barcode}", l.Barcode(),
		"{name}", l.Name(),
		"{date}", date,
	).Replace(string(t))
}

// TemplateFillError reports a label whose filled template is not valid JSON.
type TemplateFillError struct {
	Index int // zero-based position in the submitted labels
	Err   error
}

func (e *TemplateFillError) Error() string {
	return fmt.Sprintf("label %d: filled template is not valid JSON: %v", e.Index+1, e.Err)
}

func (e *TemplateFillError) Unwrap() error { return e.Err }

// GraphQL builds SPrint style requests whose layouts come from Template.
type GraphQL struct {
	Template Template
}

var _ Builder = GraphQL{}

type graphQLRequest struct {
	Query     string           `json:"query"`
	Variables graphQLVariables `json:"variables"`
}

type graphQLVariables struct {
	Printer string         `json:"printer"`
	Request graphQLPayload `json:"request"`
}

type graphQLPayload struct {
	Layouts []json.RawMessage `json:"layouts"`
}

// Build implements Builder.
func (g GraphQL) Build(labels []label.Label, printer string) ([]byte, error) {
	if err := checkInputs(labels, printer); err != nil {
		return nil, err
	}
	layouts := make([]json.RawMessage, 0, len(labels))
	for i, l := range labels {
		layout, err := compactLayout(g.Template.Fill(l))
		if err != nil {
			return nil, &TemplateFillError{Index: i, Err: err}
		}
		layouts = append(layouts, layout)
	}
	return encode(graphQLRequest{
		Query: PrintMutation,
		Variables: graphQLVariables{
			Printer: printer,
			Request: graphQLPayload{Layouts: layouts},
		},
	})
}

func compactLayout(text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty layout")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
