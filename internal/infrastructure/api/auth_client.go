package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
)

var _ ports.AuthService = (*AuthClient)(nil)

// AuthClient implementa ports.AuthService sobre /auth.
type AuthClient struct {
	c *Client
}

// NewAuthClient construye el cliente de autenticación.
func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

// Login POST /auth/login sin header Authorization. Un cuerpo {error} se trata como rechazo
// de credenciales aunque el estado sea 2xx.
func (a *AuthClient) Login(ctx context.Context, req dto.LoginRequest) (*ports.LoginResult, error) {
	var resp dto.LoginResponse
	if err := a.c.Post(ctx, "/auth/login", req, &resp, NoAuth()); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &Error{Message: resp.Error, Status: http.StatusUnauthorized, Err: domain.ErrUnauthorized}
	}
	token := strings.TrimSpace(resp.Token)
	if token == "" {
		return nil, &Error{Message: "respuesta de login sin token", Status: http.StatusOK, Err: domain.ErrServer}
	}
	user := resp.ToUser()
	if user.Username == "" {
		user.Username = req.Username
	}
	a.c.log.Info().Str("usuario", user.Username).Str("rol", user.Role).Msg("login aceptado por el backend")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// Logout POST /auth/logout con el token de la sesión que se cierra (mejor esfuerzo).
// Un 401 aquí no dispara la expiración: la sesión local ya se limpió.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.c.Post(ctx, "/auth/logout", nil, nil, WithBearer(token), noExpire())
}

// ValidateToken POST /auth/validate-token con el token en el cuerpo.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) (*dto.ValidateTokenResponse, error) {
	if token == "" {
		return &dto.ValidateTokenResponse{Valid: false}, nil
	}
	var resp dto.ValidateTokenResponse
	if err := a.c.Post(ctx, "/auth/validate-token", dto.ValidateTokenRequest{Token: token}, &resp, NoAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register POST /auth/register.
func (a *AuthClient) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := a.c.Post(ctx, "/auth/register", req, &resp, NoAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}
