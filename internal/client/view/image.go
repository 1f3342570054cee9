package view

import (
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
)

// ImageTooLargeMessage is shown when an attachment exceeds limit bytes
func ImageTooLargeMessage(limit int64) string {
	return fmt.Sprintf("Размер файла не должен превышать %d КБ", limit/1000)
}

// ImageRejection maps a datauri.FromFile error to a user message
func ImageRejection(err error, limit int64) string {
	switch {
	case datauri.IsTooLarge(err):
		return ImageTooLargeMessage(limit)
	case errors.Is(err, datauri.ErrNotImage):
		return "Можно прикрепить только изображение"
	default:
		return "Не удалось прочитать файл"
	}
}
