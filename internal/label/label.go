package label

import (
	"fmt"
	"strconv"
	"strings"
)

// Label is one parsed row of pasted text. The zero value is an empty label
// without a date. Labels are immutable once constructed.
type Label struct {
	name    string
	date    string
	hasDate bool
}

// New returns a label with no date column.
func New(name string) Label {
	return Label{name: name}
}

// NewWithDate returns a label whose date column is present, possibly blank.
func NewWithDate(name, date string) Label {
	return Label{name: name, date: date, hasDate: true}
}

// WarmUp returns the synthetic label used to prime a printer before a batch.
func WarmUp() Label {
	return NewWithDate("", "")
}

// Name returns the primary identifier.
func (l Label) Name() string { return l.name }

// Barcode returns the barcode value, which is always the name.
func (l Label) Barcode() string { return l.name }

// Date returns the date text and whether a date column was present.
func (l Label) Date() (string, bool) { return l.date, l.hasDate }

// String renders the label for logs, e.g. Label("X", null).
func (l Label) String() string {
	date := "null"
	if l.hasDate {
		date = strconv.Quote(l.date)
	}
	return fmt.Sprintf("Label(%s, %s)", strconv.Quote(l.name), date)
}

// Parse converts one tab separated line into a label. It reports false when
// the line holds nothing printable and should be skipped.
func Parse(line string) (Label, bool) {
	parts := strings.Split(line, "\t")
	switch len(parts) {
	case 0:
		return Label{}, false
	case 1, 2:
		return fromParts(parts)
	}

	kept := make([]string, 0, 2)
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 || len(kept) > 2 {
		return Label{}, false
	}
	return fromParts(kept)
}

func fromParts(parts []string) (Label, bool) {
	name := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		if name == "" {
			return Label{}, false
		}
		return New(name), true
	}
	return NewWithDate(name, strings.TrimSpace(parts[1])), true
}

// ParseText parses newline separated text, dropping skipped lines so the
// resulting rows are numbered without gaps.
func ParseText(text string) []Label {
	var labels []Label
	for _, line := range strings.Split(text, "\n") {
		if l, ok := Parse(line); ok {
			labels = append(labels, l)
		}
	}
	return labels
}

// ParseLines reads text for single free-text field printing: every
// non-blank line becomes one label holding the whole trimmed line.
func ParseLines(text string) []Label {
	var labels []Label
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			labels = append(labels, New(trimmed))
		}
	}
	return labels
}
