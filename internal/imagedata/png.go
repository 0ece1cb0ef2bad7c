package imagedata

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"
)

// ToPNG returns data as PNG bytes. PNG input is returned unchanged; JPEG and
// GIF are transcoded. Anything else is an error so callers never label
// foreign bytes as PNG.
func ToPNG(data []byte) ([]byte, error) {
	sniffed := http.DetectContentType(data)
	switch sniffed {
	case PNG:
		return data, nil
	case "image/jpeg", "image/gif":
	default:
		return nil, fmt.Errorf("unsupported image format %q", sniffed)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", sniffed, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
