package api

import (
	"context"
	"net/url"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

var _ ports.UserService = (*UserClient)(nil)

// UserClient implementa ports.UserService sobre /users.
type UserClient struct {
	c *Client
}

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func toManaged(r dto.UserResponse) *entity.ManagedUser {
	return &entity.ManagedUser{
		ID:       r.ID.String(),
		Username: r.Username,
		Name:     r.Name,
		Email:    r.Email,
		Role:     r.Role,
	}
}

func userPath(id string) string { return "/users/" + url.PathEscape(id) }

func (u *UserClient) List(ctx context.Context) ([]entity.ManagedUser, error) {
	var raw []dto.UserResponse
	if err := u.c.Get(ctx, "/users", &raw); err != nil {
		return nil, err
	}
	out := make([]entity.ManagedUser, 0, len(raw))
	for _, r := range raw {
		out = append(out, *toManaged(r))
	}
	return out, nil
}

// Get GET /users/{username}.
func (u *UserClient) Get(ctx context.Context, username string) (*entity.ManagedUser, error) {
	var raw dto.UserResponse
	if err := u.c.Get(ctx, userPath(username), &raw); err != nil {
		return nil, err
	}
	return toManaged(raw), nil
}

func (u *UserClient) Create(ctx context.Context, req dto.CreateUserRequest) (*entity.ManagedUser, error) {
	var raw dto.UserResponse
	if err := u.c.Post(ctx, "/users", req, &raw); err != nil {
		return nil, err
	}
	return toManaged(raw), nil
}

func (u *UserClient) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	var raw dto.UserResponse
	if err := u.c.Put(ctx, userPath(id), req, &raw); err != nil {
		return nil, err
	}
	return toManaged(raw), nil
}

func (u *UserClient) Delete(ctx context.Context, id string) error {
	return u.c.Delete(ctx, userPath(id))
}

// ChangeRole PATCH /users/{id}/role con {role}.
func (u *UserClient) ChangeRole(ctx context.Context, id, role string) (*entity.ManagedUser, error) {
	var raw dto.UserResponse
	if err := u.c.Patch(ctx, userPath(id)+"/role", dto.ChangeRoleRequest{Role: role}, &raw); err != nil {
		return nil, err
	}
	return toManaged(raw), nil
}

// Profile GET /users/profile.
func (u *UserClient) Profile(ctx context.Context) (*entity.ManagedUser, error) {
	var raw dto.UserResponse
	if err := u.c.Get(ctx, "/users/profile", &raw); err != nil {
		return nil, err
	}
	return toManaged(raw), nil
}

// UpdateProfile PUT /users/profile.
func (u *UserClient) UpdateProfile(ctx context.Context, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	var raw dto.UserResponse
	if err := u.c.Put(ctx, "/users/profile", req, &raw); err != nil {
		return nil, err
	}
	return toManaged(raw), nil
}

// NewBackend arma los cuatro clientes REST sobre un mismo transporte.
func NewBackend(c *Client) ports.Backend {
	return ports.Backend{
		Auth:     NewAuthClient(c),
		Products: NewProductClient(c),
		Orders:   NewOrderClient(c),
		Users:    NewUserClient(c),
	}
}
