package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/pkg/jwt"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService /auth simulado.
type AuthService struct{ b *Backend }

// Login valida usuario y contraseña y emite un JWT HS256 con usuario y rol.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*ports.LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := s.b
	b.mu.RLock()
	i := b.findUserLocked(strings.TrimSpace(req.Username))
	var acc account
	if i >= 0 {
		acc = b.users[i]
	}
	b.mu.RUnlock()

	if i < 0 || acc.password != req.Password {
		b.log.Info().Str("usuario", req.Username).Msg("login simulado rechazado")
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, domain.MsgInvalidCredentials)
	}
	token, err := jwt.Generate(b.secret, acc.ID, acc.Username, acc.Role, b.issuer, b.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServer, err)
	}
	b.log.Info().Str("usuario", acc.Username).Str("rol", acc.Role).Msg("login simulado")
	return &ports.LoginResult{
		Token: token,
		User: &entity.User{
			ID:       acc.ID,
			Username: acc.Username,
			Role:     acc.Role,
			Name:     acc.Name,
			Email:    acc.Email,
		},
	}, nil
}

// Logout revoca el token.
func (s *AuthService) Logout(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.b.mu.Lock()
	s.b.revoked[token] = struct{}{}
	s.b.mu.Unlock()
	return nil
}

// ValidateToken verifica firma, expiración, revocación y que el usuario siga existiendo.
// Devuelve el rol vigente del usuario, que puede haber cambiado desde el login.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*dto.ValidateTokenResponse, error) {
	if token == "" {
		return &dto.ValidateTokenResponse{Valid: false}, nil
	}
	acc, err := s.b.accountFor(token)
	if err != nil {
		return &dto.ValidateTokenResponse{Valid: false, Error: err.Error()}, nil
	}
	return &dto.ValidateTokenResponse{Valid: true, Usuario: acc.Username, Rol: acc.Role}, nil
}

// Register alta pública; el rol por defecto es CLIENTE.
func (s *AuthService) Register(_ context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.RoleNameCliente
	if req.Role != "" {
		if !entity.ParseRole(req.Role).Known() {
			return nil, domain.ErrInvalidInput
		}
		role = entity.NormalizeRole(req.Role)
	}
	u, err := s.b.createUser(dto.CreateUserRequest{
		Username: req.Username, Password: req.Password, Name: req.Name, Email: req.Email, Role: role,
	})
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: dto.FlexibleID(u.ID), Username: u.Username, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

// accountFor resuelve el usuario de un token vigente.
func (b *Backend) accountFor(token string) (account, error) {
	claims, err := jwt.Parse(b.secret, token)
	if err != nil {
		return account{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, ok := b.revoked[token]; ok {
		return account{}, fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
	}
	i := b.findUserLocked(claims.Usuario)
	if i < 0 {
		return account{}, fmt.Errorf("%w: usuario inexistente", domain.ErrUnauthorized)
	}
	return b.users[i], nil
}

// current usuario del token en sesión.
func (b *Backend) current() (account, error) {
	b.mu.RLock()
	ts := b.tokens
	b.mu.RUnlock()
	if ts == nil {
		return account{}, domain.ErrUnauthorized
	}
	return b.accountFor(ts.Token())
}
