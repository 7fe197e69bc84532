package entity

// SessionState estados del ciclo de vida de la sesión.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateLoading
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

// Session es la instantánea del estado de autenticación que consumen guards y navegación.
// Invariante: IsAuthenticated == (Token != ""), y sin autenticación User es nil.
type Session struct {
	Token           string
	User            *User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	State           SessionState
}

// RawRole rol crudo del usuario en sesión, vacío si no hay usuario.
func (s Session) RawRole() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// MenuItem entrada del menú de navegación.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}
