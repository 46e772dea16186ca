package errs

import (
	"errors"
	"net/http"
)

var (
	ErrUpstream    = errors.New("upstream error")
	ErrUnavailable = errors.New("service unavailable")
	ErrTimeout     = errors.New("upstream timeout")
)

func ToHTTP(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
