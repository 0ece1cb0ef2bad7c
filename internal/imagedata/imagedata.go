// Package imagedata converts image files to and from base64 data URIs.
package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
)

// PNG is the media type every generated sketch is wrapped as.
const PNG = "image/png"

// ErrMalformed is returned when a string is not a base64 data URI.
var ErrMalformed = errors.New("malformed data URI")

// DataURI is a self-describing encoded image: data:<mime>;base64,<payload>.
// The zero value means "no image".
type DataURI string

var dataURIPattern = regexp.MustCompile(`^data:([a-zA-Z0-9.+-]+/[a-zA-Z0-9.+-]+);base64,(.*)$`)

// Encode wraps raw bytes of the given media type into a data URI.
func Encode(mime string, data []byte) DataURI {
	return DataURI(fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)))
}

// IsZero reports whether d holds no image.
func (d DataURI) IsZero() bool {
	return d == ""
}

// String returns the data URI text.
func (d DataURI) String() string {
	return string(d)
}

// Split returns the media type, exactly as encoded, and the still-encoded
// base64 payload.
func (d DataURI) Split() (mime, payload string, err error) {
	m := dataURIPattern.FindStringSubmatch(string(d))
	if m == nil {
		return "", "", ErrMalformed
	}
	return m[1], m[2], nil
}

// MIMEType returns the media type, or "" if d is malformed.
func (d DataURI) MIMEType() string {
	mime, _, err := d.Split()
	if err != nil {
		return ""
	}
	return mime
}

// Decode returns the media type and raw bytes.
func (d DataURI) Decode() (string, []byte, error) {
	mime, payload, err := d.Split()
	if err != nil {
		return "", nil, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return mime, data, nil
}
