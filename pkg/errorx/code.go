package errorx

import "net/http"

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
	Conflict         Code = 100011

	// Commission codes
	ProcessorBusy Code = 200001

	// Withdrawal codes
	InsufficientBalance Code = 300001
	InvalidTransition   Code = 300002
)

var httpStatus = map[Code]int{
	BadRequest:          http.StatusBadRequest,
	BadResponse:         http.StatusInternalServerError,
	PermissionDenied:    http.StatusForbidden,
	NotFound:            http.StatusNotFound,
	Unauthenticated:     http.StatusUnauthorized,
	AlreadyExists:       http.StatusConflict,
	Internal:            http.StatusInternalServerError,
	Unavailable:         http.StatusServiceUnavailable,
	NotImplemented:      http.StatusNotImplemented,
	TooManyRequests:     http.StatusTooManyRequests,
	Conflict:            http.StatusConflict,
	ProcessorBusy:       http.StatusConflict,
	InsufficientBalance: http.StatusBadRequest,
	InvalidTransition:   http.StatusBadRequest,
}

// HTTPStatus returns the status code sent along with an error of this code.
func (c Code) HTTPStatus() int {
	if status, ok := httpStatus[c]; ok {
		return status
	}

	return http.StatusInternalServerError
}
