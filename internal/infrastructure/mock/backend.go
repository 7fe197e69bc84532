// Package mock implementa los puertos del backend en memoria, con los datos de demostración
// del cliente. Se activa con API_MOCK=true y no hace red.
package mock

import (
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// Parámetros por defecto de los tokens simulados.
const (
	DefaultSecret = "gestion-mock-secret"
	DefaultIssuer = "gestion-mock"
	DefaultTTL    = 8 * time.Hour
)

// TokenSource token de la sesión en curso; identifica al usuario en /profile y /my-orders.
type TokenSource interface {
	Token() string
}

type account struct {
	entity.ManagedUser
	password string
}

type order struct {
	entity.Order
	details []entity.OrderDetail
}

// Backend estado compartido por los cuatro servicios simulados.
type Backend struct {
	mu       sync.RWMutex
	log      *logger.Logger
	secret   string
	issuer   string
	ttl      time.Duration
	tokens   TokenSource
	revoked  map[string]struct{}
	users    []account
	products []entity.Product
	orders   []order
	nextUser int64
	nextProd int64
	nextOrd  int64
}

// Option configura el backend simulado.
type Option func(*Backend)

// WithSecret cambia el secreto HS256.
func WithSecret(secret string) Option {
	return func(b *Backend) { b.secret = secret }
}

// WithTTL cambia la vigencia de los tokens emitidos.
func WithTTL(ttl time.Duration) Option {
	return func(b *Backend) { b.ttl = ttl }
}

// New crea el backend con los datos de demostración.
func New(log *logger.Logger, opts ...Option) *Backend {
	b := &Backend{
		log:     log.Component("mock"),
		secret:  DefaultSecret,
		issuer:  DefaultIssuer,
		ttl:     DefaultTTL,
		revoked: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(b)
	}
	b.seed()
	return b
}

// SetTokenSource conecta la fuente del token en sesión (auth.Manager).
func (b *Backend) SetTokenSource(ts TokenSource) {
	b.mu.Lock()
	b.tokens = ts
	b.mu.Unlock()
}

// Ports expone el backend como los cuatro puertos de aplicación.
func (b *Backend) Ports() ports.Backend {
	return ports.Backend{
		Auth:     &AuthService{b: b},
		Products: &ProductService{b: b},
		Orders:   &OrderService{b: b},
		Users:    &UserService{b: b},
	}
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (b *Backend) seed() {
	b.users = []account{
		{entity.ManagedUser{ID: "1", Username: "admin", Name: "Administrador", Email: "admin@sistema.com", Role: entity.RoleNameAdmin}, "admin123"},
		{entity.ManagedUser{ID: "2", Username: "vendedor", Name: "Vendedor", Email: "vendedor@sistema.com", Role: entity.RoleNameVendedor}, "vendedor123"},
		{entity.ManagedUser{ID: "3", Username: "cliente", Name: "Cliente", Email: "cliente@sistema.com", Role: entity.RoleNameCliente}, "cliente123"},
		{entity.ManagedUser{ID: "4", Username: "juan.perez", Name: "Juan Pérez", Email: "juan@email.com", Role: entity.RoleNameCliente}, "juan123"},
		{entity.ManagedUser{ID: "5", Username: "maria.lopez", Name: "María López", Email: "maria@email.com", Role: entity.RoleNameVendedor}, "maria123"},
	}
	b.nextUser = 6

	b.products = []entity.Product{
		{ID: 1, Name: "Laptop HP", Description: "Laptop HP Core i7, 16GB RAM", Price: price("899.99"), Stock: 15, Category: "Electrónica"},
		{ID: 2, Name: "Mouse Logitech", Description: "Mouse inalámbrico Logitech MX Master", Price: price("79.99"), Stock: 50, Category: "Accesorios"},
		{ID: 3, Name: "Teclado Mecánico", Description: "Teclado mecánico RGB retroiluminado", Price: price("129.99"), Stock: 30, Category: "Accesorios"},
		{ID: 4, Name: `Monitor Samsung 27"`, Description: "Monitor 4K 27 pulgadas", Price: price("349.99"), Stock: 20, Category: "Electrónica"},
		{ID: 5, Name: "Webcam Logitech", Description: "Webcam HD 1080p con micrófono", Price: price("89.99"), Stock: 25, Category: "Accesorios"},
		{ID: 6, Name: "Audífonos Sony", Description: "Audífonos con cancelación de ruido", Price: price("199.99"), Stock: 40, Category: "Audio"},
		{ID: 7, Name: "Tablet Samsung", Description: `Tablet 10.5" 128GB`, Price: price("449.99"), Stock: 12, Category: "Electrónica"},
		{ID: 8, Name: "Disco SSD 1TB", Description: "Disco de estado sólido NVMe", Price: price("119.99"), Stock: 35, Category: "Almacenamiento"},
	}
	b.nextProd = 9

	line := func(p entity.Product, qty int) entity.OrderDetail {
		return entity.OrderDetail{
			ProductID: p.ID, ProductName: p.Name, Quantity: qty, Price: p.Price,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		}
	}
	pr := b.products
	b.orders = []order{
		{entity.Order{ID: 1, CustomerID: 3, CustomerName: "Cliente", Total: price("979.98"), Status: entity.OrderDelivered, CreatedAt: "2025-11-20T10:30:00"},
			[]entity.OrderDetail{line(pr[0], 1), line(pr[1], 1)}},
		{entity.Order{ID: 2, CustomerID: 3, CustomerName: "Cliente", Total: price("349.99"), Status: entity.OrderProcessing, CreatedAt: "2025-11-22T14:15:00"},
			[]entity.OrderDetail{line(pr[3], 1)}},
		{entity.Order{ID: 3, CustomerID: 3, CustomerName: "Ana García", Total: price("289.98"), Status: entity.OrderConfirmed, CreatedAt: "2025-11-24T09:00:00"},
			[]entity.OrderDetail{line(pr[5], 1), line(pr[4], 1)}},
	}
	b.nextOrd = 4
}

// findUserLocked busca por id o username.
func (b *Backend) findUserLocked(key string) int {
	for i, u := range b.users {
		if u.ID == key || u.Username == key {
			return i
		}
	}
	return -1
}

func (b *Backend) findProductLocked(id int64) int {
	for i, p := range b.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) findOrderLocked(id int64) int {
	for i, o := range b.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func idString(n int64) string { return strconv.FormatInt(n, 10) }
