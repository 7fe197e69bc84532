package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// ProfileUpdater fusiona cambios sobre el usuario en sesión (auth.Manager).
type ProfileUpdater interface {
	UpdateUser(patch entity.UserPatch) error
}

// UserUseCase administración de usuarios y perfil propio.
type UserUseCase struct {
	users   ports.UserService
	session SessionSource
	profile ProfileUpdater
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users ports.UserService, session SessionSource, profile ProfileUpdater) *UserUseCase {
	return &UserUseCase{users: users, session: session, profile: profile}
}

// List todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]entity.ManagedUser, error) {
	if _, err := authorize(uc.session, rbac.PermViewUsers); err != nil {
		return nil, err
	}
	return uc.users.List(ctx)
}

// Get un usuario por username.
func (uc *UserUseCase) Get(ctx context.Context, username string) (*entity.ManagedUser, error) {
	if _, err := authorize(uc.session, rbac.PermViewUsers); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.users.Get(ctx, username)
}

// Create alta de usuario. El rol, si viene, debe ser uno reconocido.
func (uc *UserUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (*entity.ManagedUser, error) {
	if _, err := authorize(uc.session, rbac.PermCreateUser); err != nil {
		return nil, err
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Role != "" {
		role, err := assignableRole(req.Role)
		if err != nil {
			return nil, err
		}
		req.Role = role
	}
	return uc.users.Create(ctx, req)
}

// Update modifica datos de un usuario.
func (uc *UserUseCase) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	if _, err := authorize(uc.session, rbac.PermEditUser); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.users.Update(ctx, id, req)
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if _, err := authorize(uc.session, rbac.PermDeleteUser); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.users.Delete(ctx, id)
}

// ChangeRole asigna un rol reconocido a otro usuario. No modifica la sesión actuante aunque
// el id sea el propio: el nuevo rol se refleja en la próxima validación.
func (uc *UserUseCase) ChangeRole(ctx context.Context, id, role string) (*entity.ManagedUser, error) {
	if _, err := authorize(uc.session, rbac.PermChangeUserRole); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	normalized, err := assignableRole(role)
	if err != nil {
		return nil, err
	}
	return uc.users.ChangeRole(ctx, id, normalized)
}

// assignableRole normaliza el rol y exige que sea uno de los que el backend acepta.
func assignableRole(raw string) (string, error) {
	role := entity.NormalizeRole(raw)
	if !slices.Contains(entity.KnownRoleNames(), role) {
		return "", domain.ErrInvalidInput
	}
	return role, nil
}

// MyProfile perfil del usuario en sesión.
func (uc *UserUseCase) MyProfile(ctx context.Context) (*entity.ManagedUser, error) {
	if _, err := authorize(uc.session, ""); err != nil {
		return nil, err
	}
	return uc.users.Profile(ctx)
}

// UpdateMyProfile actualiza el perfil propio y fusiona los campos no vacíos de la respuesta
// en la sesión.
func (uc *UserUseCase) UpdateMyProfile(ctx context.Context, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	if _, err := authorize(uc.session, ""); err != nil {
		return nil, err
	}
	updated, err := uc.users.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrServer
	}
	patch := entity.UserPatch{}
	if updated.Username != "" {
		patch.Username = &updated.Username
	}
	if updated.Name != "" {
		patch.Name = &updated.Name
	}
	if updated.Email != "" {
		patch.Email = &updated.Email
	}
	if updated.Role != "" {
		patch.Role = &updated.Role
	}
	if err := uc.profile.UpdateUser(patch); err != nil {
		return updated, err
	}
	return updated, nil
}
