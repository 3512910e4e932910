package delivery

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// ErrClipboardUnsupported is returned by SystemClipboard when no clipboard
// utility is available on the host.
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// SystemClipboard is the host clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadAll implements Clipboard.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}
