package entities

import (
	"errors"
	"fmt"
)

// Виды ошибок домена. Проверяются через errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrInternal    = errors.New("internal error")
	ErrUnavailable = errors.New("unavailable")
)

// Error - ошибка домена с видом, операцией и сообщением для клиента.
type Error struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сопоставляет ошибку с ее видом.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

func newError(kind error, op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError создает ошибку валидации.
func NewValidationError(op, format string, args ...any) *Error {
	return newError(ErrValidation, op, format, args...)
}

// NewNotFoundError создает ошибку отсутствия сущности.
func NewNotFoundError(op, format string, args ...any) *Error {
	return newError(ErrNotFound, op, format, args...)
}

// NewConflictError создает ошибку нарушения уникальности.
func NewConflictError(op, format string, args ...any) *Error {
	return newError(ErrConflict, op, format, args...)
}

// NewInternalError оборачивает сбой хранилища.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrInternal, Message: ErrInternal.Error(), Err: err}
}

// IsNotFound сообщает, относится ли ошибка к виду ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict сообщает, относится ли ошибка к виду ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation сообщает, относится ли ошибка к виду ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// KindOf возвращает вид ошибки. Неизвестные ошибки считаются внутренними.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnavailable, ErrInternal} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// MessageOf возвращает сообщение для клиента без внутренних подробностей.
func MessageOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Kind != ErrInternal && domainErr.Message != "" {
		return domainErr.Message
	}
	return KindOf(err).Error()
}
