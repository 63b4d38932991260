package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const (
	msgSessionExpired = "Sessão expirada. Faça login novamente."
	msgUnreachable    = "Não foi possível conectar ao servidor. Verifique sua conexão."
	msgUnexpected     = "Erro inesperado. Tente novamente."
)

var (
	// ErrUnauthorized is returned for any 401. Callers treat it as an
	// invalid session, whatever operation produced it.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnreachable  = errors.New("backend unreachable")
)

// UnauthorizedError is a 401. It matches ErrUnauthorized and keeps the
// backend's message, which the login screen shows for bad credentials.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return ErrUnauthorized.Error()
	}
	return ErrUnauthorized.Error() + ": " + e.Message
}

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// StatusError is a non-2xx, non-401 reply.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Code, e.Message)
}

// NetworkError wraps a transport failure. It matches ErrUnreachable and
// unwraps to the cause, so context cancellation stays visible.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "backend unreachable: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnreachable }

// Message is the text shown to the user for err.
func Message(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return msgSessionExpired
	case errors.As(err, &se):
		return se.Message
	case errors.Is(err, ErrUnreachable):
		return msgUnreachable
	default:
		return msgUnexpected
	}
}

// HTTPStatus is the status a screen replies with when a backend call failed.
func HTTPStatus(err error) int {
	var se *StatusError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &se):
		if se.Code == http.StatusNotFound {
			return http.StatusNotFound
		}
		if se.Code >= 400 && se.Code < 500 {
			return se.Code
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func statusError(code int, body []byte) *StatusError {
	msg := backendMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("Erro %d: %s", code, http.StatusText(code))
	}
	return &StatusError{Code: code, Message: msg}
}
