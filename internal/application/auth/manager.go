// Package auth contiene el gestor de sesión: único escritor del estado de autenticación.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
	"github.com/jhoicas/gestion-cliente/internal/domain/repository"
	"github.com/jhoicas/gestion-cliente/pkg/jwt"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// Mensajes propios del gestor.
const (
	MsgStaleLogin   = "La sesión cambió mientras se iniciaba sesión"
	MsgStoreFailure = "No se pudo guardar la sesión. Intenta nuevamente."
)

// Credentials usuario y contraseña del formulario de login.
type Credentials struct {
	Username string
	Password string
}

// LoginResult resultado de Login; nunca se devuelve error al llamador.
type LoginResult struct {
	Success    bool   `json:"success"`
	RedirectTo string `json:"redirectTo,omitempty"`
	Message    string `json:"message,omitempty"`
}

// LogoutResult Success es siempre true.
type LogoutResult struct {
	Success bool `json:"success"`
}

// Option configura el gestor.
type Option func(*Manager)

// WithClock reemplaza el reloj usado para detectar tokens expirados (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager dueño del estado de sesión en memoria, sincronizado con el SessionRepository.
// Cada Login y Logout toma un número de secuencia; una respuesta de login solo se aplica
// si ninguna otra operación empezó después (gana la última iniciada).
type Manager struct {
	store repository.SessionRepository
	auth  ports.AuthService
	log   *logger.Logger
	now   func() time.Time

	mu       sync.RWMutex
	sess     entity.Session
	seq      uint64
	inflight int
}

// NewManager construye el gestor en estado Uninitialized.
func NewManager(store repository.SessionRepository, authService ports.AuthService, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		auth:  authService,
		log:   log.Component("auth"),
		now:   time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// ── Ciclo de vida ─────────────────────────────────────────────────────────────

// Initialize hidrata la sesión desde el almacén. Nunca falla: datos corruptos o un token
// expirado se tratan como sesión ausente. Siempre termina con IsLoading=false
// (salvo que haya un login en curso).
func (m *Manager) Initialize() entity.Session {
	m.mu.Lock()
	m.sess.State = entity.StateLoading
	m.sess.IsLoading = true
	m.mu.Unlock()

	token, user := m.hydrate()

	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" {
		m.setAuthenticated(token, user)
	} else {
		m.setUnauthenticated("")
	}
	m.sess.IsLoading = m.inflight > 0
	return m.snapshot()
}

// hydrate lee token y usuario. Devuelve token vacío si no hay sesión válida; en ese caso
// limpia lo que hubiera persistido para mantener token y usuario consistentes.
func (m *Manager) hydrate() (string, *entity.User) {
	token, err := m.store.Token()
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo leer el token persistido")
		return "", nil
	}
	if token == "" {
		m.log.Debug().Msg("no hay usuario autenticado")
		return "", nil
	}

	user, err := m.store.User()
	switch {
	case errors.Is(err, domain.ErrCorruptSession):
		m.log.Debug().Err(err).Msg("datos de sesión corruptos, se descartan")
		m.clearStore()
		return "", nil
	case err != nil:
		m.log.Warn().Err(err).Msg("no se pudo leer el usuario persistido")
		return "", nil
	case user == nil:
		m.log.Warn().Msg("token persistido sin usuario, se descarta")
		m.clearStore()
		return "", nil
	}

	if claims, err := jwt.Inspect(token); err == nil && claims.Expired(m.now()) {
		m.log.Info().Str("usuario", user.Username).Msg("token persistido expirado")
		m.clearStore()
		return "", nil
	}

	m.warnUnknownRole(user, "sesión restaurada")
	m.log.Info().Str("usuario", user.Username).Str("rol", user.Role).Msg("usuario autenticado")
	return token, user
}

// Login autentica contra el backend. Con campos vacíos no hay llamada de red.
// Ante cualquier fallo la sesión previa queda intacta.
func (m *Manager) Login(ctx context.Context, creds Credentials) LoginResult {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return LoginResult{Success: false, Message: domain.MsgMissingFields}
	}

	m.mu.Lock()
	m.seq++
	mySeq := m.seq
	m.inflight++
	m.sess.IsLoading = true
	m.sess.Error = ""
	m.mu.Unlock()

	res, err := m.auth.Login(ctx, dto.LoginRequest{Username: username, Password: creds.Password})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight--
	m.sess.IsLoading = m.inflight > 0

	if mySeq != m.seq {
		m.log.Info().Str("usuario", username).Msg("respuesta de login descartada: otra operación empezó después")
		return LoginResult{Success: false, Message: MsgStaleLogin}
	}
	if err != nil {
		msg := loginFailureMessage(err)
		m.log.Warn().Err(err).Str("usuario", username).Msg("login fallido")
		m.sess.Error = msg
		return LoginResult{Success: false, Message: msg}
	}
	if res == nil || res.Token == "" || res.User == nil {
		m.log.Error().Str("usuario", username).Msg("login sin token o sin usuario")
		m.sess.Error = domain.MsgServerError
		return LoginResult{Success: false, Message: domain.MsgServerError}
	}

	user := res.User.Clone()
	if err := m.store.Save(res.Token, user); err != nil {
		m.log.Error().Err(err).Msg("no se pudo persistir la sesión")
		m.sess.Error = MsgStoreFailure
		return LoginResult{Success: false, Message: MsgStoreFailure}
	}
	m.setAuthenticated(res.Token, user)
	m.warnUnknownRole(user, "login")
	m.log.Info().Str("usuario", user.Username).Str("rol", user.Role).Str("token", jwt.Mask(res.Token)).Msg("login exitoso")

	return LoginResult{Success: true, RedirectTo: rbac.DefaultRoute(user.Role)}
}

// Logout limpia almacén y memoria de forma incondicional y luego avisa al backend
// (mejor esfuerzo). Siempre devuelve Success=true.
func (m *Manager) Logout(ctx context.Context) LogoutResult {
	m.mu.Lock()
	m.seq++
	token := m.sess.Token
	m.clearStore()
	m.setUnauthenticated("")
	m.sess.IsLoading = m.inflight > 0
	m.mu.Unlock()

	if token != "" && m.auth != nil {
		if err := m.auth.Logout(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("logout remoto falló, la sesión local ya se cerró")
		}
	}
	m.log.Info().Msg("logout exitoso")
	return LogoutResult{Success: true}
}

// UpdateUser fusiona el parche sobre el usuario en memoria y en el almacén.
// No revalida el rol. Sin sesión devuelve domain.ErrSessionNotFound y no hace nada.
func (m *Manager) UpdateUser(patch entity.UserPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.sess.IsAuthenticated || m.sess.User == nil {
		return domain.ErrSessionNotFound
	}
	u := m.sess.User.Clone()
	patch.Apply(u)
	m.sess.User = u
	if err := m.store.SaveUser(u); err != nil {
		m.log.Error().Err(err).Msg("no se pudo persistir el usuario actualizado")
		return err
	}
	m.log.Debug().Str("usuario", u.Username).Msg("usuario actualizado")
	return nil
}

// Validate consulta /auth/validate-token con el token vigente.
// valid=false o 401 cierran la sesión local; un error de red la conserva.
// Devuelve si la sesión sigue autenticada.
func (m *Manager) Validate(ctx context.Context) bool {
	m.mu.RLock()
	token := m.sess.Token
	mySeq := m.seq
	m.mu.RUnlock()
	if token == "" {
		return false
	}

	res, err := m.auth.ValidateToken(ctx, token)
	invalid := false
	switch {
	case err != nil && errors.Is(err, domain.ErrUnauthorized):
		invalid = true
	case err != nil:
		m.log.Warn().Err(err).Msg("no se pudo validar el token, se conserva la sesión")
		return m.IsAuthenticated()
	case res == nil || !res.Valid:
		invalid = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if mySeq != m.seq || m.sess.Token != token {
		return m.sess.IsAuthenticated
	}
	if invalid {
		m.log.Info().Msg("token rechazado por el backend, sesión cerrada")
		m.clearStore()
		m.setUnauthenticated(domain.MsgSessionExpired)
		return false
	}

	u := m.sess.User.Clone()
	if u == nil {
		u = &entity.User{}
	}
	if res.Usuario != "" {
		u.Username = res.Usuario
	}
	if res.Rol != "" {
		u.Role = res.Rol
	}
	m.sess.User = u
	if err := m.store.SaveUser(u); err != nil {
		m.log.Error().Err(err).Msg("no se pudo persistir el usuario validado")
	}
	m.warnUnknownRole(u, "validación")
	return true
}

// ExpireToken cierra la sesión solo si token sigue siendo el vigente; un 401 tardío de
// una sesión anterior no afecta a la nueva. Con token vacío cierra la sesión actual.
func (m *Manager) ExpireToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" && token != m.sess.Token {
		m.log.Debug().Msg("401 de un token anterior, se ignora")
		return
	}
	m.expireLocked()
}

func (m *Manager) expireLocked() {
	if !m.sess.IsAuthenticated {
		return
	}
	m.log.Warn().Str("usuario", m.sess.User.DisplayLabel()).Msg("token inválido o expirado, cerrando sesión")
	m.clearStore()
	m.setUnauthenticated(domain.MsgSessionExpired)
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// Session copia del estado actual.
func (m *Manager) Session() entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

// Token token vigente ("" sin sesión). Cumple api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.Token
}

// Role rol crudo del usuario en sesión.
func (m *Manager) Role() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.RawRole()
}

// State estado del ciclo de vida.
func (m *Manager) State() entity.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.State
}

// IsAuthenticated atajo de Session().IsAuthenticated.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.IsAuthenticated
}

// HasRole compara el rol de la sesión sin distinguir mayúsculas.
func (m *Manager) HasRole(role string) bool {
	return rbac.HasAnyRole(m.Role(), []string{role})
}

// HasAnyRole true si el rol de la sesión está en roles.
func (m *Manager) HasAnyRole(roles []string) bool {
	return rbac.HasAnyRole(m.Role(), roles)
}

// Permissions permisos del rol en sesión.
func (m *Manager) Permissions() rbac.Permissions {
	return rbac.PermissionsFor(m.Role())
}

// ── Internos (con m.mu tomado) ────────────────────────────────────────────────

func (m *Manager) snapshot() entity.Session {
	s := m.sess
	s.User = m.sess.User.Clone()
	return s
}

func (m *Manager) setAuthenticated(token string, user *entity.User) {
	m.sess.Token = token
	m.sess.User = user
	m.sess.IsAuthenticated = true
	m.sess.Error = ""
	m.sess.State = entity.StateAuthenticated
}

func (m *Manager) setUnauthenticated(errMsg string) {
	m.sess.Token = ""
	m.sess.User = nil
	m.sess.IsAuthenticated = false
	m.sess.Error = errMsg
	m.sess.State = entity.StateUnauthenticated
}

func (m *Manager) clearStore() {
	if err := m.store.Clear(); err != nil {
		m.log.Error().Err(err).Msg("no se pudo limpiar la sesión persistida")
	}
}

func (m *Manager) warnUnknownRole(u *entity.User, origin string) {
	if u.CanonicalRole() == entity.RoleUnknown {
		m.log.Warn().Str("usuario", u.Username).Str("rol", u.Role).Str("origen", origin).
			Msg("rol desconocido, se deniega todo acceso")
	}
}

// userMessager errores del transporte que conservan el texto del backend y el estado HTTP.
type userMessager interface {
	UserMessage() string
	StatusCode() int
}

// loginFailureMessage distingue credenciales inválidas de fallos de red o servidor.
func loginFailureMessage(err error) string {
	text := ""
	var um userMessager
	if errors.As(err, &um) {
		text = um.UserMessage()
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		if text != "" {
			return text
		}
		return domain.MsgInvalidCredentials
	case errors.Is(err, domain.ErrNetwork),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domain.MsgNetworkError
	case errors.Is(err, domain.ErrServer):
		return domain.MsgServerError
	case text != "":
		return text
	default:
		return domain.MsgServerError
	}
}
