package repository

// KeyValueStore define el puerto de persistencia clave/valor de la sesión (DIP).
// Acceso síncrono; valores string. Get devuelve ok=false si la clave no existe.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(keys ...string) error
	// Clear elimina todas las claves del almacén (o del prefijo propio).
	Clear() error
}
