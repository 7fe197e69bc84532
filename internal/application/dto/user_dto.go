package dto

// CreateUserRequest cuerpo de POST /users (solo ADMIN).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateUserRequest cuerpo de PUT /users/{id} y PUT /users/profile. Campos vacíos se omiten.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// ChangeRoleRequest cuerpo de PATCH /users/{id}/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse usuario tal como lo devuelve el backend.
type UserResponse struct {
	ID       FlexibleID `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
}
