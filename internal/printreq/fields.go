package printreq

import (
	"fmt"
	"strings"

	"github.com/five82/labelprint/internal/label"
)

// Field identifies a label attribute that can be emitted in a request.
type Field int

const (
	FieldName Field = iota
	FieldBarcode
	FieldDate
)

// Fields lists every field in emission order.
var Fields = []Field{FieldName, FieldBarcode, FieldDate}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldBarcode:
		return "barcode"
	case FieldDate:
		return "date"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Key returns the configuration key holding the output name for f.
func (f Field) Key() string {
	return "field_" + f.String()
}

// Value extracts the field from l. It reports false when the label has no
// value for the field.
func (f Field) Value(l label.Label) (string, bool) {
	switch f {
	case FieldName:
		return l.Name(), true
	case FieldBarcode:
		return l.Barcode(), true
	case FieldDate:
		return l.Date()
	default:
		return "", false
	}
}

// ParseField resolves a field by its name, ignoring case.
func ParseField(name string) (Field, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields {
		if f.String() == trimmed {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// Mapping associates fields with the JSON keys they are emitted under.
type Mapping map[Field]string

// NewMapping builds a Mapping, dropping fields whose output name is blank.
func NewMapping(names map[Field]string) Mapping {
	m := Mapping{}
	for f, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			m[f] = trimmed
		}
	}
	return m
}
