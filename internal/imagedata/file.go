package imagedata

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the upload limit applied when none is configured.
const DefaultMaxBytes int64 = 10 << 20

var (
	// ErrNotImage is returned for files whose content is not an image.
	ErrNotImage = errors.New("please select an image file")
	// ErrTooLarge is returned for files above the upload limit.
	ErrTooLarge = errors.New("image file is too large")
)

// ReadFile validates and reads an image file from disk. It rejects
// directories, files above maxBytes and non-image content. A maxBytes of
// zero or less uses DefaultMaxBytes.
func ReadFile(path string, maxBytes int64) (string, []byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening image: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory: %w", path, ErrNotImage)
	}
	if info.Size() > maxBytes {
		return "", nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	// Read one byte past the limit so a file that grew since Stat is caught.
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrTooLarge)
	}

	mime := DetectMIME(path, data)
	if !strings.HasPrefix(mime, "image/") {
		return "", nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotImage)
	}
	return mime, data, nil
}

// EncodeFile reads and validates path, then encodes it as a data URI.
func EncodeFile(path string, maxBytes int64) (DataURI, error) {
	mime, data, err := ReadFile(path, maxBytes)
	if err != nil {
		return "", err
	}
	return Encode(mime, data), nil
}

// DetectMIME sniffs the media type of data. Formats the sniffer does not
// know are resolved from the file extension.
func DetectMIME(path string, data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	case ".avif":
		return "image/avif"
	}
	return mime
}

// Info describes an image for preview panels.
type Info struct {
	Format string
	Width  int
	Height int
	Size   int
}

// Describe reports the format and dimensions of raw image bytes. Width and
// Height are zero for formats without a registered decoder.
func Describe(data []byte) Info {
	info := Info{Size: len(data)}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		info.Format = strings.TrimPrefix(DetectMIME("", data), "image/")
		return info
	}
	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info
}
