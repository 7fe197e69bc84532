package mock

import (
	"context"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

var _ ports.UserService = (*UserService)(nil)

// UserService /users simulado.
type UserService struct{ b *Backend }

func (s *UserService) List(_ context.Context) ([]entity.ManagedUser, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	out := make([]entity.ManagedUser, 0, len(s.b.users))
	for _, u := range s.b.users {
		out = append(out, u.ManagedUser)
	}
	return out, nil
}

func (s *UserService) Get(_ context.Context, username string) (*entity.ManagedUser, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	i := s.b.findUserLocked(username)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := s.b.users[i].ManagedUser
	return &u, nil
}

func (s *UserService) Create(_ context.Context, req dto.CreateUserRequest) (*entity.ManagedUser, error) {
	return s.b.createUser(req)
}

func (s *UserService) Update(_ context.Context, id string, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	return s.b.updateUser(id, req)
}

func (s *UserService) Delete(_ context.Context, id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	i := s.b.findUserLocked(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	s.b.users = append(s.b.users[:i], s.b.users[i+1:]...)
	return nil
}

func (s *UserService) ChangeRole(_ context.Context, id, role string) (*entity.ManagedUser, error) {
	if !entity.ParseRole(role).Known() {
		return nil, domain.ErrInvalidInput
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	i := s.b.findUserLocked(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	s.b.users[i].Role = entity.NormalizeRole(role)
	u := s.b.users[i].ManagedUser
	return &u, nil
}

func (s *UserService) Profile(_ context.Context) (*entity.ManagedUser, error) {
	acc, err := s.b.current()
	if err != nil {
		return nil, err
	}
	return &acc.ManagedUser, nil
}

func (s *UserService) UpdateProfile(_ context.Context, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	acc, err := s.b.current()
	if err != nil {
		return nil, err
	}
	return s.b.updateUser(acc.ID, req)
}

func (b *Backend) createUser(req dto.CreateUserRequest) (*entity.ManagedUser, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := entity.NormalizeRole(req.Role)
	if role == "" {
		role = entity.RoleNameCliente
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.findUserLocked(username) >= 0 {
		return nil, domain.ErrInvalidInput
	}
	acc := account{
		ManagedUser: entity.ManagedUser{
			ID:       idString(b.nextUser),
			Username: username,
			Name:     req.Name,
			Email:    req.Email,
			Role:     role,
		},
		password: req.Password,
	}
	b.nextUser++
	b.users = append(b.users, acc)
	u := acc.ManagedUser
	return &u, nil
}

func (b *Backend) updateUser(id string, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findUserLocked(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	acc := &b.users[i]
	if req.Username != "" {
		acc.Username = req.Username
	}
	if req.Name != "" {
		acc.Name = req.Name
	}
	if req.Email != "" {
		acc.Email = req.Email
	}
	if req.Password != "" {
		acc.password = req.Password
	}
	u := acc.ManagedUser
	return &u, nil
}
