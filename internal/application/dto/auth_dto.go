package dto

import "github.com/jhoicas/gestion-cliente/internal/domain/entity"

// LoginRequest cuerpo de POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser usuario anidado que algunas variantes del backend devuelven en {user:{...}}.
type LoginUser struct {
	ID       FlexibleID `json:"id"`
	Username string     `json:"username"`
	Usuario  string     `json:"usuario"`
	Role     string     `json:"role"`
	Rol      string     `json:"rol"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
}

// LoginResponse respuesta de /auth/login. La forma principal es {token, id?, usuario, rol};
// también se aceptan role/username planos y el usuario anidado. Error != "" indica rechazo.
type LoginResponse struct {
	Token    string     `json:"token"`
	ID       FlexibleID `json:"id"`
	Usuario  string     `json:"usuario"`
	Rol      string     `json:"rol"`
	Username string     `json:"username"`
	Role     string     `json:"role"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	User     *LoginUser `json:"user,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// ToUser normaliza cualquiera de las formas a entity.User.
func (r LoginResponse) ToUser() *entity.User {
	u := &entity.User{
		ID:       r.ID.String(),
		Username: pick(r.Usuario, r.Username),
		Role:     pick(r.Rol, r.Role),
		Name:     r.Name,
		Email:    r.Email,
	}
	if r.User != nil {
		n := r.User
		if u.ID == "" {
			u.ID = n.ID.String()
		}
		if u.Username == "" {
			u.Username = pick(n.Username, n.Usuario)
		}
		if u.Role == "" {
			u.Role = pick(n.Role, n.Rol)
		}
		if u.Name == "" {
			u.Name = n.Name
		}
		if u.Email == "" {
			u.Email = n.Email
		}
	}
	return u
}

// ValidateTokenRequest cuerpo de POST /auth/validate-token.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse respuesta de /auth/validate-token.
type ValidateTokenResponse struct {
	Valid   bool   `json:"valid"`
	Usuario string `json:"usuario,omitempty"`
	Rol     string `json:"rol,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterRequest cuerpo de POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
