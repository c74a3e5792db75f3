package delivery

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/doeshing/clai-go/internal/ports"
)

// ErrClipboardUnavailable is returned when no clipboard utility was found.
var ErrClipboardUnavailable = errors.New("no clipboard utility available")

// Clipboard implements ports.Clipboard on top of the platform clipboard tools
// (pbcopy, xclip/xsel/wl-copy, the Win32 API).
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

var _ ports.Clipboard = (*Clipboard)(nil)
