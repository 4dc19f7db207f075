package app

import (
	"errors"
	"fmt"

	"github.com/five82/labelprint/internal/config"
	"github.com/five82/labelprint/internal/paste"
)

// Message renders err as the text shown to the operator. A nil error means
// the service accepted the request.
func Message(err error) string {
	var missing *config.MissingError
	switch {
	case err == nil:
		return "Request sent."
	case errors.As(err, &missing):
		return fmt.Sprintf("Missing config for %s.", missing.Key)
	case errors.Is(err, ErrNothingToPrint):
		return "Nothing to print."
	case errors.Is(err, ErrNoPrinter):
		return "No printer selected."
	case errors.Is(err, paste.ErrClipboard):
		return "The clipboard could not be read."
	default:
		return "There was an error when trying to print: " + err.Error()
	}
}
