// Package apperr описывает ошибки бизнес-логики со стабильным машиночитаемым кодом
// и сообщением для клиента. Сравнение выполняется через errors.Is по коду:
//
//	if errors.Is(err, apperr.ErrNotFound) { ... }
package apperr

import (
	"errors"
	"fmt"
)

// Code машиночитаемый код ошибки, возвращаемый клиенту.
type Code string

const (
	// CodePersistence: сбой хранилища (соединение, выполнение запроса).
	CodePersistence Code = "PERSISTENCE_ERROR"
	// CodeInvalidReference: ссылка на несуществующую сущность (товар).
	CodeInvalidReference Code = "INVALID_REFERENCE"
	// CodeOperationLocked: изменение запрещено временным окном.
	CodeOperationLocked Code = "OPERATION_LOCKED"
	// CodeNotFound: сущность пользователя не найдена (карта).
	CodeNotFound Code = "NOT_FOUND"
)

// Error ошибка с кодом, сообщением и тегом места вызова.
type Error struct {
	Code    Code
	Message string
	Op      string
	Err     error
}

// Sentinel-значения для errors.Is.
var (
	ErrPersistence      = &Error{Code: CodePersistence, Message: "internal storage error"}
	ErrInvalidReference = &Error{Code: CodeInvalidReference, Message: "referenced entity does not exist"}
	ErrOperationLocked  = &Error{Code: CodeOperationLocked, Message: "operation is locked"}
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "entity does not exist"}
)

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по коду.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Persistence оборачивает ошибку драйвера тегом места вызова.
func Persistence(op string, err error) error {
	return &Error{Code: CodePersistence, Message: ErrPersistence.Message, Op: op, Err: err}
}

// InvalidReference ошибка ссылки на несуществующую сущность.
func InvalidReference(op, msg string) error {
	return &Error{Code: CodeInvalidReference, Message: msg, Op: op}
}

// Locked ошибка запрета операции по временному окну.
func Locked(op, msg string) error {
	return &Error{Code: CodeOperationLocked, Message: msg, Op: op}
}

// NotFound ошибка отсутствия сущности у владельца.
func NotFound(op, msg string) error {
	return &Error{Code: CodeNotFound, Message: msg, Op: op}
}

// From извлекает *Error из цепочки. Для прочих ошибок возвращает ok=false.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
