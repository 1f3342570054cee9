package domain

import (
	"errors"
	"net/url"

	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
)

// Image rejection reasons, used as metric labels
const (
	ImageRejectTooLarge = "too_large"
	ImageRejectNotImage = "not_image"
	ImageRejectInvalid  = "invalid"
)

// ValidateImage checks an optional image field. It accepts an empty value,
// an image data URI within limit bytes or an absolute http(s) URL. The
// returned reason is empty when the value is accepted.
func ValidateImage(value string, limit int) (reason string, err error) {
	if value == "" {
		return "", nil
	}

	if datauri.IsDataURI(value) {
		_, err := datauri.DecodeImage(value, int64(limit))
		switch {
		case err == nil:
			return "", nil
		case datauri.IsTooLarge(err):
			return ImageRejectTooLarge, pkgerrors.NewValidationError(err.Error())
		case errors.Is(err, datauri.ErrNotImage):
			return ImageRejectNotImage, pkgerrors.NewValidationError("file is not an image")
		default:
			return ImageRejectInvalid, pkgerrors.NewValidationError("invalid image data")
		}
	}

	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ImageRejectInvalid, pkgerrors.NewValidationError("image must be a data URI or an http(s) URL")
	}

	return "", nil
}
