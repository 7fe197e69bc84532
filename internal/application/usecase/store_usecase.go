package usecase

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// CartItem producto en el carrito con su cantidad.
type CartItem struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal precio × cantidad.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart carrito de la tienda. La cantidad de cada ítem nunca supera el stock del producto.
type Cart struct {
	mu    sync.Mutex
	items []CartItem
}

// NewCart carrito vacío.
func NewCart() *Cart { return &Cart{} }

// Add suma una unidad del producto.
func (c *Cart) Add(p entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			if c.items[i].Quantity >= p.Stock {
				return domain.ErrInsufficientStock
			}
			c.items[i].Quantity++
			return nil
		}
	}
	if !p.InStock() {
		return domain.ErrInsufficientStock
	}
	c.items = append(c.items, CartItem{Product: p, Quantity: 1})
	return nil
}

// SetQuantity fija la cantidad; cero o menos quita el ítem.
func (c *Cart) SetQuantity(productID int64, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID != productID {
			continue
		}
		if qty <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
		if qty > c.items[i].Product.Stock {
			return domain.ErrInsufficientStock
		}
		c.items[i].Quantity = qty
		return nil
	}
	return domain.ErrNotFound
}

// Remove quita un producto del carrito.
func (c *Cart) Remove(productID int64) {
	_ = c.SetQuantity(productID, 0)
}

// Items copia de los ítems.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total suma de subtotales.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items() {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Empty true si no hay ítems.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// StoreUseCase tienda para clientes.
type StoreUseCase struct {
	products ports.ProductService
	orders   ports.OrderService
	session  SessionSource
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(products ports.ProductService, orders ports.OrderService, session SessionSource) *StoreUseCase {
	return &StoreUseCase{products: products, orders: orders, session: session}
}

// Products productos con stock disponible.
func (uc *StoreUseCase) Products(ctx context.Context) ([]entity.Product, error) {
	if _, err := authorize(uc.session, rbac.PermViewStore); err != nil {
		return nil, err
	}
	all, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if p.InStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Checkout crea la orden del carrito a nombre del usuario en sesión y vacía el carrito.
// El total enviado es el del carrito; el IVA se deriva al normalizar.
func (uc *StoreUseCase) Checkout(ctx context.Context, cart *Cart, paymentMethod string) (*entity.Order, error) {
	sess, err := authorize(uc.session, rbac.PermMakePurchase)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.Empty() {
		return nil, domain.ErrEmptyCart
	}
	items := cart.Items()
	in := dto.CreateOrderInput{
		CustomerID:    numericID(sess.User.ID),
		PaymentMethod: paymentMethod,
		Items:         make([]dto.OrderItemInput, 0, len(items)),
	}
	for _, it := range items {
		in.Items = append(in.Items, dto.OrderItemInput{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}
	order, err := uc.orders.Create(ctx, in.Normalize())
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return order, nil
}

// CartFor arma un carrito con las líneas pedidas validando stock contra el catálogo actual.
// Líneas repetidas se suman.
func (uc *StoreUseCase) CartFor(ctx context.Context, lines []dto.CheckoutItem) (*Cart, error) {
	products, err := uc.Products(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	cart := NewCart()
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		for i := 0; i < l.Quantity; i++ {
			if err := cart.Add(p); err != nil {
				return nil, err
			}
		}
	}
	return cart, nil
}
