package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/repository"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// Claves persistidas. El esquema vigente es token + userData; rol/usuario solo se leen
// para migrar instalaciones antiguas y nunca se escriben.
const (
	KeyToken        = "token"
	KeyUserData     = "userData"
	KeyCacheVersion = "cacheVersion"
	KeyLegacyRole   = "rol"
	KeyLegacyUser   = "usuario"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// batchSetter backends capaces de escribir varias claves en una sola operación.
type batchSetter interface {
	SetMany(values map[string]string) error
}

// SessionStore vista tipada del almacén clave/valor de la sesión.
type SessionStore struct {
	kv  repository.KeyValueStore
	log *logger.Logger
}

// NewSessionStore envuelve un backend.
func NewSessionStore(kv repository.KeyValueStore, log *logger.Logger) *SessionStore {
	return &SessionStore{kv: kv, log: log.Component("storage")}
}

// Token devuelve el token persistido, "" si no hay.
func (s *SessionStore) Token() (string, error) {
	v, ok, err := s.kv.Get(KeyToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(v), nil
}

// storedUser acepta las variantes de forma observadas en userData (role/rol, username/usuario,
// user anidado) y las normaliza a entity.User.
type storedUser struct {
	ID       json.RawMessage `json:"id,omitempty"`
	Username string          `json:"username"`
	Usuario  string          `json:"usuario"`
	Role     string          `json:"role"`
	Rol      string          `json:"rol"`
	Name     string          `json:"name"`
	Nombre   string          `json:"nombre"`
	Email    string          `json:"email"`
	User     *storedUser     `json:"user,omitempty"`
}

func (u storedUser) toEntity() *entity.User {
	out := &entity.User{
		ID:       rawID(u.ID),
		Username: firstNonEmpty(u.Username, u.Usuario),
		Role:     firstNonEmpty(u.Role, u.Rol),
		Name:     firstNonEmpty(u.Name, u.Nombre),
		Email:    u.Email,
	}
	if u.User == nil {
		return out
	}
	// Los campos externos prevalecen; el objeto anidado completa los que falten.
	in := u.User.toEntity()
	out.ID = firstNonEmpty(out.ID, in.ID)
	out.Username = firstNonEmpty(out.Username, in.Username)
	out.Role = firstNonEmpty(out.Role, in.Role)
	out.Name = firstNonEmpty(out.Name, in.Name)
	out.Email = firstNonEmpty(out.Email, in.Email)
	return out
}

// rawID acepta ids numéricos o string.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// User devuelve el usuario persistido; (nil, nil) si no hay registro.
// Un registro ilegible devuelve domain.ErrCorruptSession.
func (s *SessionStore) User() (*entity.User, error) {
	v, ok, err := s.kv.Get(KeyUserData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var su storedUser
	if err := json.Unmarshal([]byte(v), &su); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	u := su.toEntity()
	if u.Username == "" && u.Role == "" {
		return nil, fmt.Errorf("%w: registro de usuario vacío", domain.ErrCorruptSession)
	}
	return u, nil
}

func encodeUser(u *entity.User) (string, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("storage: serializar usuario: %w", err)
	}
	return string(raw), nil
}

// Save persiste token y usuario. Con backends por clave se escribe userData primero y
// token al final: nunca queda un token sin usuario.
func (s *SessionStore) Save(token string, u *entity.User) error {
	if token == "" || u == nil {
		return fmt.Errorf("%w: token y usuario requeridos", domain.ErrInvalidInput)
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	if b, ok := s.kv.(batchSetter); ok {
		return b.SetMany(map[string]string{KeyUserData: data, KeyToken: token})
	}
	if err := s.kv.Set(KeyUserData, data); err != nil {
		return fmt.Errorf("storage: guardar usuario: %w", err)
	}
	if err := s.kv.Set(KeyToken, token); err != nil {
		return fmt.Errorf("storage: guardar token: %w", err)
	}
	return nil
}

// SaveUser reemplaza solo el registro de usuario.
func (s *SessionStore) SaveUser(u *entity.User) error {
	if u == nil {
		return fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	if err := s.kv.Set(KeyUserData, data); err != nil {
		return fmt.Errorf("storage: guardar usuario: %w", err)
	}
	return nil
}

// Clear elimina token, userData y las claves heredadas. cacheVersion se conserva.
func (s *SessionStore) Clear() error {
	if err := s.kv.Delete(KeyToken, KeyUserData, KeyLegacyRole, KeyLegacyUser); err != nil {
		return fmt.Errorf("storage: limpiar sesión: %w", err)
	}
	return nil
}

// MigrateLegacy convierte el esquema antiguo (token + rol + usuario) al vigente.
// Devuelve true si escribió userData a partir de las claves heredadas.
func (s *SessionStore) MigrateLegacy() (bool, error) {
	rol, hasRol, err := s.kv.Get(KeyLegacyRole)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	usuario, hasUsuario, err := s.kv.Get(KeyLegacyUser)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !hasRol && !hasUsuario {
		return false, nil
	}

	_, hasUserData, err := s.kv.Get(KeyUserData)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	migrated := false
	if !hasUserData {
		data, err := encodeUser(&entity.User{Username: usuario, Role: rol})
		if err != nil {
			return false, err
		}
		if err := s.kv.Set(KeyUserData, data); err != nil {
			return false, fmt.Errorf("storage: migrar usuario: %w", err)
		}
		migrated = true
	}
	if err := s.kv.Delete(KeyLegacyRole, KeyLegacyUser); err != nil {
		return migrated, fmt.Errorf("storage: borrar claves heredadas: %w", err)
	}
	if migrated {
		s.log.Info().Str("usuario", usuario).Msg("sesión heredada migrada a userData")
	}
	return migrated, nil
}

// EnsureCacheVersion borra todo el almacén si la versión guardada difiere de version y
// deja guardada la nueva. Devuelve true si hubo limpieza.
func (s *SessionStore) EnsureCacheVersion(version string) (bool, error) {
	if version == "" {
		return false, nil
	}
	stored, ok, err := s.kv.Get(KeyCacheVersion)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if ok && stored == version {
		return false, nil
	}
	if err := s.kv.Clear(); err != nil {
		return false, fmt.Errorf("storage: limpiar caché: %w", err)
	}
	if err := s.kv.Set(KeyCacheVersion, version); err != nil {
		return true, fmt.Errorf("storage: guardar versión de caché: %w", err)
	}
	s.log.Info().Str("anterior", stored).Str("nueva", version).Msg("versión de caché cambió, almacenamiento limpiado")
	return true, nil
}
