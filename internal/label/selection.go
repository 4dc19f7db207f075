package label

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidRange reports whether the 1-based inclusive range [first, last]
// selects at least one of count rows.
func ValidRange(first, last, count int) bool {
	return first >= 1 && first <= last && last <= count
}

// Select returns a copy of labels[first-1:last]. An invalid range yields an
// empty selection.
func Select(labels []Label, first, last int) []Label {
	if !ValidRange(first, last, len(labels)) {
		return nil
	}
	out := make([]Label, last-first+1)
	copy(out, labels[first-1:last])
	return out
}

// WithWarmUp returns a new slice with the warm-up label in front when enabled.
func WithWarmUp(labels []Label, enabled bool) []Label {
	if !enabled {
		out := make([]Label, len(labels))
		copy(out, labels)
		return out
	}
	out := make([]Label, 0, len(labels)+1)
	out = append(out, WarmUp())
	return append(out, labels...)
}

// ParseRange parses a row range such as "4", "2-7" or "2:7".
func ParseRange(value string) (int, int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, 0, fmt.Errorf("range is empty")
	}
	sep := strings.IndexAny(trimmed, "-:")
	if sep < 0 {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, 0, fmt.Errorf("parse range %q: %w", value, err)
		}
		return n, n, nil
	}
	first, err := strconv.Atoi(strings.TrimSpace(trimmed[:sep]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse range start %q: %w", value, err)
	}
	last, err := strconv.Atoi(strings.TrimSpace(trimmed[sep+1:]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse range end %q: %w", value, err)
	}
	return first, last, nil
}
