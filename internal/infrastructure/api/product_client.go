package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
)

var _ ports.ProductService = (*ProductClient)(nil)

// ProductClient implementa ports.ProductService sobre /products.
type ProductClient struct {
	c *Client
}

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func productPath(id int64) string { return "/products/" + strconv.FormatInt(id, 10) }

func (p *ProductClient) List(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := p.c.Get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProductClient) Get(ctx context.Context, id int64) (*entity.Product, error) {
	var out entity.Product
	if err := p.c.Get(ctx, productPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductClient) Create(ctx context.Context, req dto.ProductRequest) (*entity.Product, error) {
	var out entity.Product
	if err := p.c.Post(ctx, "/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductClient) Update(ctx context.Context, id int64, req dto.ProductRequest) (*entity.Product, error) {
	var out entity.Product
	if err := p.c.Put(ctx, productPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductClient) Delete(ctx context.Context, id int64) error {
	return p.c.Delete(ctx, productPath(id))
}

// Search GET /products/search?q=.
func (p *ProductClient) Search(ctx context.Context, query string) ([]entity.Product, error) {
	var out []entity.Product
	if err := p.c.Get(ctx, "/products/search", &out, WithQuery(url.Values{"q": {query}})); err != nil {
		return nil, err
	}
	return out, nil
}

// ByCategory GET /products/category/{category}.
func (p *ProductClient) ByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	var out []entity.Product
	if err := p.c.Get(ctx, "/products/category/"+url.PathEscape(category), &out); err != nil {
		return nil, err
	}
	return out, nil
}
