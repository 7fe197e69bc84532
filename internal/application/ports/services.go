package ports

import (
	"context"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// LoginResult resultado normalizado de un login exitoso.
type LoginResult struct {
	Token string
	User  *entity.User
}

// AuthService puerto del servicio de autenticación del backend.
// Login devuelve *api.Error (o un error que envuelve los centinelas de domain) cuando falla;
// un cuerpo {error} se traduce a domain.ErrUnauthorized con el texto del backend.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error)
	// Logout recibe el token de la sesión que se cierra: la sesión local ya se limpió.
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*dto.ValidateTokenResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
}

// ProductService puerto de /products.
type ProductService interface {
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, req dto.ProductRequest) (*entity.Product, error)
	Update(ctx context.Context, id int64, req dto.ProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]entity.Product, error)
	ByCategory(ctx context.Context, category string) ([]entity.Product, error)
}

// OrderService puerto de /orders.
type OrderService interface {
	List(ctx context.Context) ([]entity.Order, error)
	Get(ctx context.Context, id int64) (*entity.Order, error)
	Create(ctx context.Context, req dto.OrderRequest) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error)
	Cancel(ctx context.Context, id int64) error
	MyOrders(ctx context.Context) ([]entity.Order, error)
	Details(ctx context.Context, id int64) ([]entity.OrderDetail, error)
	Statistics(ctx context.Context) (dto.OrderStatistics, error)
}

// UserService puerto de /users.
type UserService interface {
	List(ctx context.Context) ([]entity.ManagedUser, error)
	Get(ctx context.Context, username string) (*entity.ManagedUser, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*entity.ManagedUser, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.ManagedUser, error)
	Delete(ctx context.Context, id string) error
	ChangeRole(ctx context.Context, id, role string) (*entity.ManagedUser, error)
	Profile(ctx context.Context) (*entity.ManagedUser, error)
	UpdateProfile(ctx context.Context, req dto.UpdateUserRequest) (*entity.ManagedUser, error)
}

// Backend agrupa los cuatro servicios (cliente REST o backend simulado).
type Backend struct {
	Auth     AuthService
	Products ProductService
	Orders   OrderService
	Users    UserService
}
