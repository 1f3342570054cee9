package errors

import (
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
)

var (
	ErrNewsIDRequired       = pkgerrors.NewValidationError("News ID required")
	ErrInvalidNewsID        = pkgerrors.NewValidationError("invalid news ID")
	ErrTitleContentRequired = pkgerrors.NewValidationError("title and content required")
	ErrTitleTooLong         = pkgerrors.NewValidationError("title too long")
	ErrNewsNotFound         = pkgerrors.NewNotFoundError("News not found")
	ErrImageStorageFailed   = pkgerrors.NewDatabaseError("failed to store image")
)
