package mock

import (
	"context"
	"strings"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

var _ ports.ProductService = (*ProductService)(nil)

// ProductService /products simulado.
type ProductService struct{ b *Backend }

func (s *ProductService) List(_ context.Context) ([]entity.Product, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	out := make([]entity.Product, len(s.b.products))
	copy(out, s.b.products)
	return out, nil
}

func (s *ProductService) Get(_ context.Context, id int64) (*entity.Product, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	i := s.b.findProductLocked(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := s.b.products[i]
	return &p, nil
}

func (s *ProductService) Create(_ context.Context, req dto.ProductRequest) (*entity.Product, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	p := entity.Product{
		ID:          s.b.nextProd,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	}
	s.b.nextProd++
	s.b.products = append(s.b.products, p)
	return &p, nil
}

func (s *ProductService) Update(_ context.Context, id int64, req dto.ProductRequest) (*entity.Product, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	i := s.b.findProductLocked(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := entity.Product{ID: id, Name: req.Name, Description: req.Description, Price: req.Price, Stock: req.Stock, Category: req.Category}
	s.b.products[i] = p
	return &p, nil
}

func (s *ProductService) Delete(_ context.Context, id int64) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	i := s.b.findProductLocked(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.b.products = append(s.b.products[:i], s.b.products[i+1:]...)
	return nil
}

// Search coincidencia sin distinguir mayúsculas en nombre o descripción.
func (s *ProductService) Search(_ context.Context, query string) ([]entity.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(p entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q)
	}), nil
}

func (s *ProductService) ByCategory(_ context.Context, category string) ([]entity.Product, error) {
	return s.filter(func(p entity.Product) bool { return strings.EqualFold(p.Category, category) }), nil
}

func (s *ProductService) filter(keep func(entity.Product) bool) []entity.Product {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	out := make([]entity.Product, 0)
	for _, p := range s.b.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
