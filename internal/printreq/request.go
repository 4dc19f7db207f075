package printreq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/labelprint/internal/label"
)

// Builder serializes a batch of labels into a print service request body.
type Builder interface {
	Build(labels []label.Label, printer string) ([]byte, error)
}

var (
	// ErrNoLabels is returned when a build is attempted with nothing to print.
	ErrNoLabels = errors.New("no labels to print")
	// ErrNoPrinter is returned when a build is attempted without a printer.
	ErrNoPrinter = errors.New("no printer selected")
)

func checkInputs(labels []label.Label, printer string) error {
	if printer == "" {
		return ErrNoPrinter
	}
	if len(labels) == 0 {
		return ErrNoLabels
	}
	return nil
}

// encode marshals v without HTML escaping and without a trailing newline.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// member is one key/value pair of an object whose key order is significant.
type member struct {
	key   string
	value string
}

// orderedObject is a string-valued JSON object that keeps insertion order.
type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	out := []byte{'{'}
	for i, m := range o {
		if i > 0 {
			out = append(out, ',')
		}
		key, err := encode(m.key)
		if err != nil {
			return nil, err
		}
		value, err := encode(m.value)
		if err != nil {
			return nil, err
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, value...)
	}
	return append(out, '}'), nil
}
