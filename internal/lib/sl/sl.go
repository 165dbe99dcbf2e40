// Package sl содержит вспомогательные функции для структурированного логирования через slog.
package sl

import (
	"log/slog"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
)

// Err возвращает атрибут "error" с текстом ошибки.
//
//	log.Error("failed to register card", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Code возвращает атрибут "code" с кодом ошибки бизнес-логики, если он есть.
func Code(err error) slog.Attr {
	if e, ok := apperr.From(err); ok {
		return slog.String("code", string(e.Code))
	}
	return slog.String("code", "")
}

// User возвращает атрибут с идентификатором пользователя.
func User(userID string) slog.Attr {
	return slog.String("user_uid", userID)
}
