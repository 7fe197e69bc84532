package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/gestion-cliente/internal/domain"
)

// Estados especiales de Normalize (sin respuesta HTTP).
const (
	StatusNoResponse   = 0  // la petición salió pero no hubo respuesta
	StatusRequestSetup = -1 // falló al construir la petición
)

// Mensajes por defecto de Normalize.
const (
	msgServerDefault = "Error en el servidor"
	msgNoResponse    = "No se pudo conectar con el servidor. Verifica tu conexión."
	msgUnknown       = "Error desconocido"
)

// Error respuesta no 2xx (o fallo de transporte) traducida a una forma normalizada.
// Message es el texto que envió el backend, puede venir vacío.
type Error struct {
	Message string
	Status  int
	Code    string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("api: HTTP %d: %s", e.Status, msg)
	}
	return "api: " + msg
}

// Unwrap expone el centinela de domain correspondiente al estado y la causa original.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if s := sentinelFor(e.Status); s != nil {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// UserMessage texto del backend para mostrar al usuario ("" si no envió ninguno).
func (e *Error) UserMessage() string { return e.Message }

// StatusCode estado HTTP (0 sin respuesta, -1 fallo de construcción).
func (e *Error) StatusCode() int { return e.Status }

func sentinelFor(status int) error {
	switch {
	case status == StatusNoResponse:
		return domain.ErrNetwork
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case status >= 500:
		return domain.ErrServer
	default:
		return nil
	}
}

// Normalized forma {message, status} que consumen las pantallas.
type Normalized struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Normalize convierte cualquier error del transporte a {message, status}.
// Con respuesta: mensaje del backend o "Error en el servidor". Sin respuesta: status 0.
// Otros errores: status -1 con el texto del error.
func Normalize(err error) Normalized {
	if err == nil {
		return Normalized{}
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == StatusNoResponse:
			return Normalized{Message: msgNoResponse, Status: StatusNoResponse}
		case apiErr.Status == StatusRequestSetup:
			msg := apiErr.Message
			if msg == "" && apiErr.Err != nil {
				msg = apiErr.Err.Error()
			}
			if msg == "" {
				msg = msgUnknown
			}
			return Normalized{Message: msg, Status: StatusRequestSetup}
		default:
			msg := apiErr.Message
			if msg == "" {
				msg = msgServerDefault
			}
			return Normalized{Message: msg, Status: apiErr.Status}
		}
	}
	msg := err.Error()
	if msg == "" {
		msg = msgUnknown
	}
	return Normalized{Message: msg, Status: StatusRequestSetup}
}
