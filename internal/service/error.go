package service

import (
	"errors"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
)

var (
	ErrOrderNotFound       = errors.New("ORDER_NOT_FOUND")
	ErrInvalidAmount       = errors.New("INVALID_AMOUNT")
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
	ErrUnableToPerform     = errors.New("UNABLE_TO_PERFORM")
	ErrOrderOnProcess      = errors.New("ORDER_ON_PROCESS")
	ErrUnsupportedGateway  = errors.New("UNSUPPORTED_GATEWAY")
	ErrDatabase            = errors.New("DATABASE_ERROR")
	ErrUnauthorized        = errors.New("UNAUTHORIZED")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// CodeOf returns the service error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) string {
	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}

	return constants.ErrCodeInternalError
}
