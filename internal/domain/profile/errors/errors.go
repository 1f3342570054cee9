package errors

import (
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
)

var (
	ErrUserIDRequired         = pkgerrors.NewValidationError("user_id required")
	ErrUserIDNicknameRequired = pkgerrors.NewValidationError("user_id and nickname required")
	ErrNicknameTooLong        = pkgerrors.NewValidationError("nickname too long")
	ErrUserIDTooLong          = pkgerrors.NewValidationError("user_id too long")
	ErrProfileNotFound        = pkgerrors.NewNotFoundError("Profile not found")
	ErrAvatarStorageFailed    = pkgerrors.NewDatabaseError("failed to store avatar")
)
