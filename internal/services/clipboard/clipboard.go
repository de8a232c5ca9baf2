// Package clipboard copies rendered documents to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const (
	clipboardUnsupportedMessage = "no clipboard utility available on this system"
	clipboardWriteErrorFormat   = "write %d bytes to clipboard: %w"
)

// ErrUnsupported reports that the platform offers no clipboard mechanism,
// for example a headless Linux host without xclip, xsel or wl-copy.
var ErrUnsupported = errors.New(clipboardUnsupportedMessage)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	unsupported bool
	writeAll    func(string) error
}

// NewService constructs a Service bound to the system clipboard.
func NewService() *Service {
	return &Service{unsupported: clipboard.Unsupported, writeAll: clipboard.WriteAll}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported {
		return ErrUnsupported
	}
	if err := service.writeAll(text); err != nil {
		return fmt.Errorf(clipboardWriteErrorFormat, len(text), err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
