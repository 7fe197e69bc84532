package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrSessionNotFound  = errors.New("no hay sesión activa")
	ErrCorruptSession   = errors.New("datos de sesión corruptos")
	ErrSessionExpired   = errors.New("sesión expirada")
	ErrNetwork          = errors.New("error de conexión con el servidor")
	ErrServer           = errors.New("error en el servidor")
	ErrStoreUnavailable = errors.New("almacenamiento de sesión no disponible")

	ErrInsufficientStock = errors.New("no hay más stock disponible")
	ErrEmptyCart         = errors.New("el carrito está vacío")
)

// Mensajes de error visibles para el usuario.
const (
	MsgUnauthorized       = "No tienes autorización para acceder a este recurso"
	MsgForbidden          = "No tienes permisos para realizar esta acción"
	MsgNotFound           = "Recurso no encontrado"
	MsgServerError        = "Error en el servidor. Intenta nuevamente más tarde"
	MsgNetworkError       = "Error de conexión. Verifica tu red e intenta nuevamente"
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgSessionExpired     = "Tu sesión ha expirado. Por favor inicia sesión nuevamente"
	MsgMissingFields      = "Por favor completa todos los campos"
	MsgAccessDenied       = "No tienes permisos para acceder a este recurso."
)
