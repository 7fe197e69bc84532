package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
)

// CatalogUseCase casos de uso del listado de productos.
type CatalogUseCase struct {
	products ports.ProductService
	session  SessionSource
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products ports.ProductService, session SessionSource) *CatalogUseCase {
	return &CatalogUseCase{products: products, session: session}
}

// List todos los productos.
func (uc *CatalogUseCase) List(ctx context.Context) ([]entity.Product, error) {
	if _, err := authorize(uc.session, rbac.PermViewProducts); err != nil {
		return nil, err
	}
	return uc.products.List(ctx)
}

// Page lista y recorta según la página pedida.
func (uc *CatalogUseCase) Page(ctx context.Context, page dto.PageRequest) (*dto.ProductPage, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	from, to := page.Window(len(items))
	return &dto.ProductPage{
		Items:        items[from:to],
		PageResponse: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Get un producto por id.
func (uc *CatalogUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	if _, err := authorize(uc.session, rbac.PermViewProducts); err != nil {
		return nil, err
	}
	return uc.products.Get(ctx, id)
}

// Create crea un producto (solo administradores).
func (uc *CatalogUseCase) Create(ctx context.Context, req dto.ProductRequest) (*entity.Product, error) {
	if _, err := authorize(uc.session, rbac.PermCreateProduct); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if !req.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return uc.products.Create(ctx, req)
}

// Update reemplaza un producto.
func (uc *CatalogUseCase) Update(ctx context.Context, id int64, req dto.ProductRequest) (*entity.Product, error) {
	if _, err := authorize(uc.session, rbac.PermEditProduct); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if id <= 0 || !req.Validate() {
		return nil, domain.ErrInvalidInput
	}
	return uc.products.Update(ctx, id, req)
}

// Delete elimina un producto.
func (uc *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := authorize(uc.session, rbac.PermDeleteProduct); err != nil {
		return err
	}
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.products.Delete(ctx, id)
}

// Search busca por nombre; consulta vacía equivale a List.
func (uc *CatalogUseCase) Search(ctx context.Context, query string) ([]entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.List(ctx)
	}
	if _, err := authorize(uc.session, rbac.PermViewProducts); err != nil {
		return nil, err
	}
	return uc.products.Search(ctx, query)
}

// ByCategory filtra por categoría.
func (uc *CatalogUseCase) ByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	if _, err := authorize(uc.session, rbac.PermViewProducts); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.products.ByCategory(ctx, category)
}
