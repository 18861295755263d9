package service

import (
	"context"
	"quote-storefront/internal/model"
	"quote-storefront/internal/repository"
)

type CatalogService interface {
	ListServices(ctx context.Context) ([]*model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListServices(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) ListByCategory(ctx context.Context, category string) ([]*model.Product, error) {
	return s.productRepo.ListByCategory(ctx, category)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}
