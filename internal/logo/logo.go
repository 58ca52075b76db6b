// Package logo validates uploaded company logos and encodes them as data
// URLs for embedding in the invoice document.
package logo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxBytes caps the raw logo payload at 2 MiB.
const MaxBytes = 2 << 20

var (
	// ErrTooLarge is returned for payloads over MaxBytes.
	ErrTooLarge = errors.New("logo: file exceeds 2MB limit")
	// ErrNotImage is returned for non-image content types.
	ErrNotImage = errors.New("logo: file is not an image")
)

// DataURL validates the payload and returns it as a base64 data URL. The
// content type must be an image/* MIME type and the payload at most MaxBytes.
func DataURL(contentType string, data []byte) (string, error) {
	if len(data) > MaxBytes {
		return "", ErrTooLarge
	}
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !strings.HasPrefix(mime, "image/") || len(mime) == len("image/") {
		return "", ErrNotImage
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
