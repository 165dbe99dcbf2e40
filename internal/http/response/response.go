// Package response формирует JSON-ответы HTTP-обработчиков в едином формате
// и сопоставляет ошибки бизнес-логики с HTTP-статусами.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
)

// Response стандартная структура JSON-ответа.
type Response struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Status: StatusOK}
}

// Error возвращает Response с ошибкой и сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// FromError сопоставляет ошибку с HTTP-статусом и телом ответа.
// Сообщения ошибок хранилища клиенту не отдаются.
func FromError(err error) (int, Response) {
	e, ok := apperr.From(err)
	if !ok {
		return http.StatusInternalServerError, Error("internal error")
	}

	resp := Response{Status: StatusError, Code: string(e.Code), Error: e.Message}
	switch e.Code {
	case apperr.CodeInvalidReference:
		return http.StatusBadRequest, resp
	case apperr.CodeOperationLocked:
		return http.StatusConflict, resp
	case apperr.CodeNotFound:
		return http.StatusNotFound, resp
	default:
		resp.Error = apperr.ErrPersistence.Message
		return http.StatusInternalServerError, resp
	}
}

// ValidationError формирует Response из ошибок валидации, по одному сообщению на поле.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "len", "min", "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has invalid length", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be positive", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
