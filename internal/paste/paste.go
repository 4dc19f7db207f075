// Package paste supplies raw label text from the clipboard or from files.
//
// Spreadsheet "Unicode text" exports are UTF-16 with a byte order mark; those
// are decoded to UTF-8. Line endings are normalized to \n in every case.
package paste

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrClipboard matches every *ClipboardError.
var ErrClipboard = errors.New("clipboard could not be read")

// ClipboardError wraps a failure to read the system clipboard.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("the clipboard could not be read: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrClipboard) match.
func (e *ClipboardError) Is(target error) bool { return target == ErrClipboard }

// readClipboard is replaced in tests.
var readClipboard = clipboard.ReadAll

// Clipboard returns the current clipboard text.
func Clipboard() (string, error) {
	if clipboard.Unsupported {
		return "", &ClipboardError{Err: errors.New("no clipboard utility available")}
	}
	text, err := readClipboard()
	if err != nil {
		return "", &ClipboardError{Err: err}
	}
	return normalize(text), nil
}

// File reads path, or standard input when path is "-".
func File(path string) (string, error) {
	if path == "-" {
		return Reader(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Reader(f)
}

// Reader decodes UTF-8 or BOM-marked UTF-16 text from r.
func Reader(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	raw, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return normalize(string(raw)), nil
}

func normalize(text string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
}
