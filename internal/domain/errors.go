package domain

import (
	"errors"
	"fmt"
)

// Clasificación de fallos del fetch. El cliente HTTP traduce cada fallo a
// uno de estos tipos en el punto donde ocurre; el pipeline los mapea 1:1 a
// mensajes para el usuario. Ninguno se reintenta.
var (
	// ErrInvalidCredentials — el servicio devolvió 400: API key o realm incorrectos.
	ErrInvalidCredentials = errors.New("invalid API key or realm")
	// ErrUpstreamUnavailable — el servicio devolvió 500.
	ErrUpstreamUnavailable = errors.New("pricing service unavailable")
	// ErrMalformedResponse — la respuesta 2xx no parsea como array de ítems.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrTimeout — la request superó el timeout del cliente o del contexto.
	ErrTimeout = errors.New("request timed out")
)

// StatusError es cualquier status no-2xx que no mapea a un error conocido.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
