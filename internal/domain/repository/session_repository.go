package repository

import "github.com/jhoicas/gestion-cliente/internal/domain/entity"

// SessionRepository vista tipada de la sesión persistida (token + usuario).
// User devuelve (nil, nil) si no hay registro y domain.ErrCorruptSession si es ilegible.
type SessionRepository interface {
	Token() (string, error)
	User() (*entity.User, error)
	Save(token string, user *entity.User) error
	SaveUser(user *entity.User) error
	Clear() error
}
