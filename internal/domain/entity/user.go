package entity

// User es el usuario autenticado tal como se conserva en la sesión y en userData.
// Role guarda el valor crudo recibido del backend; usar ParseRole para decisiones.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// CanonicalRole devuelve la variante canónica del rol del usuario.
func (u *User) CanonicalRole() Role {
	if u == nil {
		return RoleUnknown
	}
	return ParseRole(u.Role)
}

// DisplayLabel es el nombre a mostrar: Name si existe, si no Username.
func (u *User) DisplayLabel() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Clone devuelve una copia independiente (nil-safe).
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// UserPatch campos opcionales para fusionar sobre el usuario en sesión.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Role     *string `json:"role,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Apply fusiona los campos no nulos del parche sobre u.
func (p UserPatch) Apply(u *User) {
	if u == nil {
		return
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// ManagedUser usuario tal como lo administra el módulo de usuarios (solo ADMIN).
type ManagedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
