package utils

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error kinds used across the lifecycle managers. PartialFailure only
// exists to drive the order/items compensation and is remapped to
// StoreUnavailable before it leaves the order service.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindStoreUnavailable
	KindPartialFailure
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func StoreUnavailable(msg string, err error) *AppError {
	return &AppError{Kind: KindStoreUnavailable, Message: msg, Err: err}
}

func PartialFailure(msg string, err error) *AppError {
	return &AppError{Kind: KindPartialFailure, Message: msg, Err: err}
}

// KindOf extracts the kind from a wrapped error chain.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// WrapDB classifies a gorm error: a missing row is NotFound, anything
// else is treated as the store being unreachable or refusing the write.
func WrapDB(err error, format string, args ...interface{}) *AppError {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Kind: KindNotFound, Message: msg, Err: err}
	}
	return &AppError{Kind: KindStoreUnavailable, Message: msg, Err: err}
}

// HTTPStatus maps an error kind to the response code used by controllers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindStoreUnavailable, KindPartialFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
