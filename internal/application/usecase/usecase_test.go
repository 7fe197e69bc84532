package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_SinPermisoNoLlamaAlBackend(t *testing.T) {
	products := new(mockProducts)
	ctx := context.Background()

	uc := usecase.NewCatalogUseCase(products, sessionAs("3", "CLIENTE"))
	_, err := uc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	uc = usecase.NewCatalogUseCase(products, sessionAs("2", "VENDEDOR"))
	_, err = uc.Create(ctx, dto.ProductRequest{Name: "x", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden, "vendedor solo lee")
	assert.ErrorIs(t, uc.Delete(ctx, 1), domain.ErrForbidden)

	uc = usecase.NewCatalogUseCase(products, anonymous())
	_, err = uc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	products.AssertNotCalled(t, "List", mock.Anything)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalog_AdminCreaYValida(t *testing.T) {
	products := new(mockProducts)
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(products, sessionAs("1", "ADMINISTRADOR"))

	_, err := uc.Create(ctx, dto.ProductRequest{Name: "  ", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := dto.ProductRequest{Name: "Parlante", Price: dec("59.90"), Stock: 4}
	products.On("Create", ctx, req).Return(&entity.Product{ID: 9, Name: "Parlante"}, nil).Once()
	p, err := uc.Create(ctx, dto.ProductRequest{Name: " Parlante ", Price: dec("59.90"), Stock: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	products.AssertExpectations(t)
}

func TestCatalog_BusquedaVaciaEsListado(t *testing.T) {
	products := new(mockProducts)
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(products, sessionAs("2", "VENDEDOR"))

	products.On("List", ctx).Return([]entity.Product{{ID: 1}}, nil).Once()
	got, err := uc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	products.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestCatalog_Paginacion(t *testing.T) {
	products := new(mockProducts)
	ctx := context.Background()
	items := make([]entity.Product, 25)
	for i := range items {
		items[i] = entity.Product{ID: int64(i + 1)}
	}
	products.On("List", ctx).Return(items, nil)
	uc := usecase.NewCatalogUseCase(products, sessionAs("1", "ADMIN"))

	page, err := uc.Page(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 25, page.Total)

	page, err = uc.Page(ctx, dto.PageRequest{Limit: 20, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(21), page.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_CrearAsignaVendedorYNormaliza(t *testing.T) {
	orders := new(mockOrders)
	ctx := context.Background()
	uc := usecase.NewOrderUseCase(orders, sessionAs("7", "ADMIN"))

	orders.On("Create", ctx, mock.MatchedBy(func(r dto.OrderRequest) bool {
		return r.VendedorID == 7 &&
			r.Estado == "PENDIENTE" &&
			r.MedioPago == "efectivo" &&
			r.Cuotas == 1 &&
			r.Subtotal.Equal(dec("200")) &&
			r.IVA.Equal(dec("38")) &&
			r.MontoTotal.Equal(dec("238"))
	})).Return(&entity.Order{ID: 10}, nil).Once()

	o, err := uc.Create(ctx, dto.CreateOrderInput{
		CustomerID: 3,
		Cuotas:     6,
		Items:      []dto.OrderItemInput{{ProductID: 1, Quantity: 2, Price: dec("100")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), o.ID)
	orders.AssertExpectations(t)
}

func TestOrders_ClienteCreaSinVendedor(t *testing.T) {
	orders := new(mockOrders)
	ctx := context.Background()
	uc := usecase.NewOrderUseCase(orders, sessionAs("3", "CLIENTE"))

	orders.On("Create", ctx, mock.MatchedBy(func(r dto.OrderRequest) bool {
		return r.VendedorID == 0 && r.MedioPago == "credito" && r.Cuotas == 3
	})).Return(&entity.Order{ID: 11}, nil).Once()

	_, err := uc.Create(ctx, dto.CreateOrderInput{
		PaymentMethod: "CREDITO",
		Cuotas:        3,
		Items:         []dto.OrderItemInput{{ProductID: 1, Quantity: 1, Price: dec("5")}},
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateOrderInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	orders.AssertExpectations(t)
}

func TestOrders_PermisosPorOperacion(t *testing.T) {
	orders := new(mockOrders)
	ctx := context.Background()
	vend := usecase.NewOrderUseCase(orders, sessionAs("2", "VENDEDOR"))

	_, err := vend.UpdateStatus(ctx, 1, "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, vend.Cancel(ctx, 1), domain.ErrForbidden)
	_, err = vend.Create(ctx, dto.CreateOrderInput{Items: []dto.OrderItemInput{{ProductID: 1}}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	orders.On("Details", ctx, int64(1)).Return([]entity.OrderDetail{{ProductID: 1}}, nil).Once()
	d, err := vend.Details(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, d, 1)

	cli := usecase.NewOrderUseCase(orders, sessionAs("3", "CLIENTE"))
	_, err = cli.List(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	orders.On("MyOrders", ctx).Return([]entity.Order{{ID: 1}}, nil).Once()
	mine, err := cli.MyOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	admin := usecase.NewOrderUseCase(orders, sessionAs("1", "ADMIN"))
	orders.On("UpdateStatus", ctx, int64(4), "SHIPPED").Return(&entity.Order{ID: 4, Status: "SHIPPED"}, nil).Once()
	o, err := admin.UpdateStatus(ctx, 4, " shipped ")
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", o.Status)
	orders.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_ChangeRoleValidaRol(t *testing.T) {
	users := new(mockUsers)
	profile := new(mockProfile)
	ctx := context.Background()
	uc := usecase.NewUserUseCase(users, sessionAs("1", "ADMIN"), profile)

	for _, bad := range []string{"SUPERUSER", "", " admin", "UNKNOWN"} {
		_, err := uc.ChangeRole(ctx, "4", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol %q", bad)
	}

	users.On("ChangeRole", ctx, "4", "VENDEDOR").Return(&entity.ManagedUser{ID: "4", Role: "VENDEDOR"}, nil).Once()
	u, err := uc.ChangeRole(ctx, "4", "vendedor")
	require.NoError(t, err)
	assert.Equal(t, "VENDEDOR", u.Role)

	users.On("ChangeRole", ctx, "5", "ADMINISTRADOR").Return(&entity.ManagedUser{ID: "5", Role: "ADMINISTRADOR"}, nil).Once()
	_, err = uc.ChangeRole(ctx, "5", "Administrador")
	require.NoError(t, err)

	users.AssertExpectations(t)
	profile.AssertNotCalled(t, "UpdateUser", mock.Anything)
}

func TestUsers_SoloAdminGestiona(t *testing.T) {
	users := new(mockUsers)
	ctx := context.Background()
	uc := usecase.NewUserUseCase(users, sessionAs("2", "VENDEDOR"), new(mockProfile))

	_, err := uc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ChangeRole(ctx, "3", "ADMIN")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, "3"), domain.ErrForbidden)
	users.AssertNotCalled(t, "List", mock.Anything)
}

func TestUsers_CreateRolDesconocido(t *testing.T) {
	users := new(mockUsers)
	uc := usecase.NewUserUseCase(users, sessionAs("1", "ADMIN"), new(mockProfile))
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Username: "x", Password: "y", Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Username: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsers_UpdateMyProfileFusionaEnSesion(t *testing.T) {
	users := new(mockUsers)
	profile := new(mockProfile)
	ctx := context.Background()
	uc := usecase.NewUserUseCase(users, sessionAs("3", "CLIENTE"), profile)

	req := dto.UpdateUserRequest{Name: "Nuevo Nombre"}
	users.On("UpdateProfile", ctx, req).
		Return(&entity.ManagedUser{ID: "3", Username: "cliente", Name: "Nuevo Nombre"}, nil).Once()
	profile.On("UpdateUser", mock.MatchedBy(func(p entity.UserPatch) bool {
		return p.Name != nil && *p.Name == "Nuevo Nombre" &&
			p.Username != nil && *p.Username == "cliente" &&
			p.Email == nil && p.Role == nil
	})).Return(nil).Once()

	u, err := uc.UpdateMyProfile(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo Nombre", u.Name)
	users.AssertExpectations(t)
	profile.AssertExpectations(t)
}

func TestUsers_UpdateMyProfileErrorNoTocaSesion(t *testing.T) {
	users := new(mockUsers)
	profile := new(mockProfile)
	ctx := context.Background()
	uc := usecase.NewUserUseCase(users, sessionAs("3", "CLIENTE"), profile)

	users.On("UpdateProfile", ctx, mock.Anything).Return(nil, domain.ErrServer).Once()
	_, err := uc.UpdateMyProfile(ctx, dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrServer)
	profile.AssertNotCalled(t, "UpdateUser", mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_RespetaStock(t *testing.T) {
	cart := usecase.NewCart()
	p := entity.Product{ID: 1, Price: dec("10.50"), Stock: 2}

	require.NoError(t, cart.Add(p))
	require.NoError(t, cart.Add(p))
	assert.ErrorIs(t, cart.Add(p), domain.ErrInsufficientStock)
	assert.ErrorIs(t, cart.Add(entity.Product{ID: 2, Stock: 0}), domain.ErrInsufficientStock)
	assert.True(t, dec("21").Equal(cart.Total()))

	assert.ErrorIs(t, cart.SetQuantity(1, 3), domain.ErrInsufficientStock)
	assert.ErrorIs(t, cart.SetQuantity(9, 1), domain.ErrNotFound)
	require.NoError(t, cart.SetQuantity(1, 0))
	assert.True(t, cart.Empty())
}

func TestStore_ProductosConStock(t *testing.T) {
	products := new(mockProducts)
	ctx := context.Background()
	products.On("List", ctx).Return([]entity.Product{{ID: 1, Stock: 0}, {ID: 2, Stock: 3}}, nil)

	uc := usecase.NewStoreUseCase(products, new(mockOrders), sessionAs("3", "CLIENTE"))
	got, err := uc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	vend := usecase.NewStoreUseCase(products, new(mockOrders), sessionAs("2", "VENDEDOR"))
	_, err = vend.Products(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden, "vendedor no accede a la tienda")
}

func TestStore_CheckoutCreaOrdenYVaciaCarrito(t *testing.T) {
	orders := new(mockOrders)
	ctx := context.Background()
	uc := usecase.NewStoreUseCase(new(mockProducts), orders, sessionAs("3", "CLIENTE"))

	_, err := uc.Checkout(ctx, usecase.NewCart(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	cart := usecase.NewCart()
	require.NoError(t, cart.Add(entity.Product{ID: 5, Price: dec("89.99"), Stock: 4}))
	require.NoError(t, cart.Add(entity.Product{ID: 5, Price: dec("89.99"), Stock: 4}))

	orders.On("Create", ctx, mock.MatchedBy(func(r dto.OrderRequest) bool {
		return r.ClienteID == 3 && len(r.Detalle) == 1 && r.Detalle[0].Cantidad == 2 &&
			r.Subtotal.Equal(dec("179.98"))
	})).Return(&entity.Order{ID: 20}, nil).Once()

	o, err := uc.Checkout(ctx, cart, "debito")
	require.NoError(t, err)
	assert.Equal(t, int64(20), o.ID)
	assert.True(t, cart.Empty())
	orders.AssertExpectations(t)
}

func TestStore_CheckoutFallidoConservaCarrito(t *testing.T) {
	orders := new(mockOrders)
	ctx := context.Background()
	uc := usecase.NewStoreUseCase(new(mockProducts), orders, sessionAs("3", "CLIENTE"))
	cart := usecase.NewCart()
	require.NoError(t, cart.Add(entity.Product{ID: 1, Price: dec("1"), Stock: 1}))

	orders.On("Create", ctx, mock.Anything).Return(nil, domain.ErrNetwork).Once()
	_, err := uc.Checkout(ctx, cart, "")
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.False(t, cart.Empty())
}

func TestStore_CartForValidaLineas(t *testing.T) {
	products := new(mockProducts)
	ctx := context.Background()
	products.On("List", ctx).Return([]entity.Product{
		{ID: 1, Price: dec("10"), Stock: 3},
		{ID: 2, Price: dec("5"), Stock: 0},
	}, nil)
	uc := usecase.NewStoreUseCase(products, new(mockOrders), sessionAs("3", "CLIENTE"))

	cart, err := uc.CartFor(ctx, []dto.CheckoutItem{{ProductID: 1, Quantity: 2}, {ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 3, cart.Items()[0].Quantity, "líneas repetidas se suman")

	_, err = uc.CartFor(ctx, []dto.CheckoutItem{{ProductID: 1, Quantity: 4}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.CartFor(ctx, []dto.CheckoutItem{{ProductID: 2, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin stock no aparece en la tienda")

	_, err = uc.CartFor(ctx, []dto.CheckoutItem{{ProductID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard / reportes
// ──────────────────────────────────────────────────────────────────────────────

func backend(p *mockProducts, o *mockOrders, u *mockUsers) ports.Backend {
	return ports.Backend{Products: p, Orders: o, Users: u}
}

func TestDashboard_SoloConsultaLoPermitido(t *testing.T) {
	p, o, u := new(mockProducts), new(mockOrders), new(mockUsers)
	ctx := context.Background()
	p.On("List", ctx).Return([]entity.Product{{ID: 1}, {ID: 2}}, nil)
	o.On("List", ctx).Return(nil, domain.ErrNetwork)

	uc := usecase.NewDashboardUseCase(backend(p, o, u), sessionAs("2", "VENDEDOR"), logger.Nop())
	stats, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Products)
	assert.Equal(t, 0, stats.Orders, "un fallo deja el contador en 0")
	assert.False(t, stats.ShowUsers)
	assert.Equal(t, "Usuario 2", stats.Welcome)
	u.AssertNotCalled(t, "List", mock.Anything)

	_, err = usecase.NewDashboardUseCase(backend(p, o, u), sessionAs("3", "CLIENTE"), logger.Nop()).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReports_Snapshot(t *testing.T) {
	p, o, u := new(mockProducts), new(mockOrders), new(mockUsers)
	p.On("List", mock.Anything).Return([]entity.Product{{ID: 1}}, nil)
	o.On("List", mock.Anything).Return([]entity.Order{{Total: dec("119")}, {Total: dec("238")}}, nil)
	u.On("List", mock.Anything).Return([]entity.ManagedUser{{ID: "1"}, {ID: "2"}}, nil)

	uc := usecase.NewReportUseCase(backend(p, o, u), sessionAs("1", "ADMIN"), logger.Nop())
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Products)
	assert.Equal(t, 2, snap.Orders)
	assert.Equal(t, 2, snap.Users)
	assert.True(t, dec("300").Equal(snap.Subtotal), snap.Subtotal.String())
	assert.True(t, dec("57").Equal(snap.IVA))
	assert.True(t, dec("357").Equal(snap.TotalConIVA))
	assert.True(t, snap.TotalConIVA.Equal(snap.ByPayment[entity.PaymentEfectivo].Total))
	assert.True(t, snap.ByPayment[entity.PaymentCredito].Total.IsZero())
}

func TestReports_SoloAdmin(t *testing.T) {
	uc := usecase.NewReportUseCase(ports.Backend{}, sessionAs("2", "VENDEDOR"), logger.Nop())
	_, err := uc.Snapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReports_PollCargaInicialYPorTick(t *testing.T) {
	p, o, u := new(mockProducts), new(mockOrders), new(mockUsers)
	var calls atomic.Int32
	p.On("List", mock.Anything).Return([]entity.Product{}, nil)
	o.On("List", mock.Anything).Return(nil, errors.New("caído")).Run(func(mock.Arguments) { calls.Add(1) })
	u.On("List", mock.Anything).Return([]entity.ManagedUser{}, nil)

	uc := usecase.NewReportUseCase(backend(p, o, u), sessionAs("1", "ADMIN"), logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan usecase.ReportUpdate, 16)

	done := make(chan error, 1)
	go func() {
		done <- uc.Poll(ctx, 10*time.Millisecond, func(up usecase.ReportUpdate) { updates <- up })
	}()

	first := <-updates
	assert.Error(t, first.Err)
	assert.Nil(t, first.Snapshot)
	assert.Equal(t, usecase.MsgReportsUnavailable, first.Message)

	// El error no detiene el ciclo.
	second := <-updates
	assert.Equal(t, usecase.MsgReportsUnavailable, second.Message)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestReports_PollSeDetieneSinPermiso(t *testing.T) {
	uc := usecase.NewReportUseCase(ports.Backend{}, sessionAs("3", "CLIENTE"), logger.Nop())
	var got []usecase.ReportUpdate
	err := uc.Poll(context.Background(), time.Millisecond, func(up usecase.ReportUpdate) { got = append(got, up) })
	assert.ErrorIs(t, err, domain.ErrForbidden)
	require.Len(t, got, 1)
	assert.Equal(t, usecase.MsgReportsUnavailable, got[0].Message)
}
