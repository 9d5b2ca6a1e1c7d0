package ecode

import (
	"fmt"
	"net/http"
)

// Business codes
const (
	OK         = 0
	RequestErr = -400
	ParamErr   = -401
	CursorErr  = -402
	NotFound   = -404
	ServerErr  = -500
	StoreErr   = -503
)

var codeText = map[int]string{
	OK:         "ok",
	RequestErr: "invalid request",
	ParamErr:   "invalid parameters",
	CursorErr:  "invalid cursor",
	NotFound:   "resource not found",
	ServerErr:  "internal server error",
	StoreErr:   "store unavailable",
}

// Text returns the default message of a code
func Text(code int) string {
	if msg, ok := codeText[code]; ok {
		return msg
	}
	return codeText[ServerErr]
}

// HTTPStatus maps a business code onto an HTTP status
func HTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case RequestErr, ParamErr, CursorErr:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case StoreErr:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

const (
	requiredMsg = "required"
	invalidMsg  = "invalid"
	notExistMsg = "does not exist"
	negativeMsg = "must not be negative"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldIsNegative returns field negative message
func FieldIsNegative(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], negativeMsg)
	}
	return negativeMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}
