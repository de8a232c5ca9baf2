package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCopyWritesText(t *testing.T) {
	var written string
	service := &Service{writeAll: func(text string) error {
		written = text
		return nil
	}}

	require.NoError(t, service.Copy("## `main.go`\n"))
	assert.Equal(t, "## `main.go`\n", written)
}

func TestServiceCopyWrapsWriteFailure(t *testing.T) {
	writeFailure := errors.New("xclip exited with status 1")
	service := &Service{writeAll: func(string) error { return writeFailure }}

	err := service.Copy("abc")

	require.Error(t, err)
	assert.ErrorIs(t, err, writeFailure)
	assert.Contains(t, err.Error(), "3 bytes")
}

func TestServiceCopyReportsUnsupportedPlatform(t *testing.T) {
	service := &Service{unsupported: true, writeAll: func(string) error {
		t.Fatalf("writeAll must not be called when the clipboard is unsupported")
		return nil
	}}

	assert.ErrorIs(t, service.Copy("abc"), ErrUnsupported)
}
