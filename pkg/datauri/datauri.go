// Package datauri converts images to and from RFC 2397 data URIs, the
// representation used to embed news images and avatars in JSON bodies.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultMaxBytes is the largest image accepted for news posts and avatars
const DefaultMaxBytes = 200000

var (
	// ErrNotDataURI is returned when the value is not a base64 data URI
	ErrNotDataURI = errors.New("not a base64 data URI")
	// ErrNotImage is returned when the payload is not an image
	ErrNotImage = errors.New("file is not an image")
)

// TooLargeError reports an image over the configured limit
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file size %s exceeds the %s limit",
		humanize.Bytes(uint64(e.Size)), humanize.Bytes(uint64(e.Limit)))
}

// IsTooLarge reports whether err is a *TooLargeError
func IsTooLarge(err error) bool {
	var e *TooLargeError
	return errors.As(err, &e)
}

// Image is a decoded data URI
type Image struct {
	ContentType string
	Data        []byte
}

// Encode builds a data URI from raw bytes
func Encode(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether s looks like a data URI
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// Decode parses a base64 data URI
func Decode(s string) (*Image, error) {
	if !IsDataURI(s) {
		return nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &Image{ContentType: contentType, Data: data}, nil
}

// DecodeImage decodes s and checks it is an image within limit bytes
func DecodeImage(s string, limit int64) (*Image, error) {
	img, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if int64(len(img.Data)) > limit {
		return nil, &TooLargeError{Size: int64(len(img.Data)), Limit: limit}
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return nil, ErrNotImage
	}
	return img, nil
}

// FromFile reads an image file and encodes it as a data URI. The size is
// checked with Stat before the file is read.
func FromFile(path string, limit int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > limit {
		return "", &TooLargeError{Size: info.Size(), Limit: limit}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	return Encode(contentType, data), nil
}

// Extension returns a file extension for an image content type
func Extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
