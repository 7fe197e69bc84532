package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

// ── sesión ──────────────────────────────────────────────────────────────────

type fixedSession struct{ sess entity.Session }

func (f fixedSession) Session() entity.Session { return f.sess }

func sessionAs(id, role string) fixedSession {
	return fixedSession{entity.Session{
		Token:           "tok",
		User:            &entity.User{ID: id, Username: "u" + id, Name: "Usuario " + id, Role: role},
		IsAuthenticated: true,
		State:           entity.StateAuthenticated,
	}}
}

func anonymous() fixedSession { return fixedSession{entity.Session{State: entity.StateUnauthenticated}} }

type mockProfile struct{ mock.Mock }

func (m *mockProfile) UpdateUser(p entity.UserPatch) error {
	return m.Called(p).Error(0)
}

// ── productos ───────────────────────────────────────────────────────────────

type mockProducts struct{ mock.Mock }

func (m *mockProducts) List(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockProducts) Get(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProducts) Create(ctx context.Context, req dto.ProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProducts) Update(ctx context.Context, id int64, req dto.ProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProducts) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProducts) Search(ctx context.Context, q string) ([]entity.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockProducts) ByCategory(ctx context.Context, c string) ([]entity.Product, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

// ── órdenes ─────────────────────────────────────────────────────────────────

type mockOrders struct{ mock.Mock }

func (m *mockOrders) List(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *mockOrders) Get(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrders) Create(ctx context.Context, req dto.OrderRequest) (*entity.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrders) Cancel(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrders) MyOrders(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *mockOrders) Details(ctx context.Context, id int64) ([]entity.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OrderDetail), args.Error(1)
}

func (m *mockOrders) Statistics(ctx context.Context) (dto.OrderStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.OrderStatistics), args.Error(1)
}

// ── usuarios ────────────────────────────────────────────────────────────────

type mockUsers struct{ mock.Mock }

func (m *mockUsers) List(ctx context.Context) ([]entity.ManagedUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ManagedUser), args.Error(1)
}

func (m *mockUsers) Get(ctx context.Context, username string) (*entity.ManagedUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, req dto.CreateUserRequest) (*entity.ManagedUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUsers) ChangeRole(ctx context.Context, id, role string) (*entity.ManagedUser, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}

func (m *mockUsers) Profile(ctx context.Context) (*entity.ManagedUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}

func (m *mockUsers) UpdateProfile(ctx context.Context, req dto.UpdateUserRequest) (*entity.ManagedUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManagedUser), args.Error(1)
}
