package errors

import (
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
)

var (
	ErrMessageIDRequired = pkgerrors.NewValidationError("Message ID required")
	ErrInvalidMessageID  = pkgerrors.NewValidationError("invalid message ID")
	ErrTextRequired      = pkgerrors.NewValidationError("text required")
	ErrTextTooLong       = pkgerrors.NewValidationError("text too long")
	ErrUserNameTooLong   = pkgerrors.NewValidationError("user_name too long")
	ErrMessageNotFound   = pkgerrors.NewNotFoundError("Message not found")
	ErrNotMessageOwner   = pkgerrors.NewPermissionError("only the author can delete this message")
)
