package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrFileTooLarge is surfaced verbatim in the UI, keep it user-readable
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	// ErrInvalidMimeType likewise
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// AllowedImageTypes is the set of raster formats the platform displays
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidateFile checks MIME type and size before any storage I/O.
// The MIME type is sniffed from content (magic bytes), not trusted from the
// client. Type rejection wins over size rejection so the user fixes the
// right problem first. A file exactly at maxSize is accepted.
func ValidateFile(reader io.Reader, maxSize int64) ([]byte, string, error) {
	// Read at most maxSize+1 to detect oversized files without buffering them whole
	limitedReader := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}

	mimeType := http.DetectContentType(data)
	// Clean up MIME type (e.g. "image/jpeg; charset=utf-8" -> "image/jpeg")
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	if !AllowedImageTypes[mimeType] {
		return nil, "", ErrInvalidMimeType
	}

	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	return data, mimeType, nil
}

// ExtensionForMime returns the file extension for an allowed MIME type
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
