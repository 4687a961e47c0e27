package domain

import (
	"errors"
	"fmt"
)

// ErrorKind категория доменной ошибки
type ErrorKind string

const (
	KindInvalidDateRange  ErrorKind = "invalid_date_range"
	KindNegativeAmount    ErrorKind = "negative_amount"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindOutOfWindow       ErrorKind = "out_of_window"
	KindRoomUnavailable   ErrorKind = "room_unavailable"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindNotFound          ErrorKind = "not_found"
)

// Error структурированная доменная ошибка: категория + сообщение для человека
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is сравнивает ошибки по категории, чтобы errors.Is работал с сентинелами ниже
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Сентинелы для errors.Is
var (
	ErrInvalidDateRange  = &Error{Kind: KindInvalidDateRange}
	ErrNegativeAmount    = &Error{Kind: KindNegativeAmount}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrOutOfWindow       = &Error{Kind: KindOutOfWindow}
	ErrRoomUnavailable   = &Error{Kind: KindRoomUnavailable}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

// NewError создает доменную ошибку с форматированным сообщением
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError извлекает доменную ошибку из цепочки
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
