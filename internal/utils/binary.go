package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// SniffLength is the number of leading bytes inspected when detecting binary content.
const SniffLength = 8192

// ContainsNUL reports whether the sample holds a NUL byte, the marker of binary content.
func ContainsNUL(sample []byte) bool {
	return bytes.IndexByte(sample, 0) >= 0
}

// IsFileBinary reads up to SniffLength bytes from the file at path and reports
// whether they contain a NUL byte. A file that cannot be opened or read is
// reported as binary.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	buffer := make([]byte, SniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && !errors.Is(readError, io.EOF) && !errors.Is(readError, io.ErrUnexpectedEOF) {
		return true
	}
	return ContainsNUL(buffer[:bytesRead])
}
