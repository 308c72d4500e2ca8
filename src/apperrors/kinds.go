package apperrors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"gorm.io/gorm"
)

// Kind classifies an internal failure. The set is closed on purpose:
// client-facing codes are derived from it, so adding a kind means
// deciding its code and HTTP status here, in one place.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDatabase
	KindFile
	KindNetwork
	KindBusinessRule
	KindInternal
)

// Code is the stable client-facing identifier for a Kind.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeAuth         Code = "AUTH_ERROR"
	CodeAuthz        Code = "AUTHZ_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodeDatabase     Code = "DATABASE_ERROR"
	CodeFile         Code = "FILE_ERROR"
	CodeNetwork      Code = "NETWORK_ERROR"
	CodeBusinessRule Code = "BUSINESS_RULE_ERROR"
	CodeInternal     Code = "INTERNAL_ERROR"
)

var kindCodes = map[Kind]Code{
	KindValidation:     CodeValidation,
	KindAuthentication: CodeAuth,
	KindAuthorization:  CodeAuthz,
	KindNotFound:       CodeNotFound,
	KindDatabase:       CodeDatabase,
	KindFile:           CodeFile,
	KindNetwork:        CodeNetwork,
	KindBusinessRule:   CodeBusinessRule,
	KindInternal:       CodeInternal,
}

var kindStatus = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindAuthentication: http.StatusUnauthorized,
	KindAuthorization:  http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindDatabase:       http.StatusInternalServerError,
	KindFile:           http.StatusInternalServerError,
	KindNetwork:        http.StatusBadGateway,
	KindBusinessRule:   http.StatusUnprocessableEntity,
	KindInternal:       http.StatusInternalServerError,
}

// Code returns the client-facing code for the kind. Unknown kinds
// collapse to INTERNAL_ERROR rather than leaking anything specific.
func (k Kind) Code() Code {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return CodeInternal
}

// HTTPStatus returns the response status for the kind.
func (k Kind) HTTPStatus() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	return string(k.Code())
}

// Classify derives a Kind from an arbitrary error. Anything it cannot
// place with confidence becomes KindInternal.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var event *ErrorEvent
	if errors.As(err, &event) {
		return event.Kind
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return KindValidation
	case errors.Is(err, gorm.ErrInvalidTransaction),
		errors.Is(err, gorm.ErrInvalidDB):
		return KindDatabase
	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return KindFile
	case errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return KindFile
	}

	return KindInternal
}
