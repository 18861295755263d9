package repository

import (
	"context"
	"quote-storefront/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "basic-vm", Name: "Basic VM", Description: "2 vCPU, 4 GB RAM, 80 GB SSD cloud instance", Category: "CLOUD", Price: decimal.NewFromInt(50), SortOrder: 1},
		{ID: "pro-vm", Name: "Pro VM", Description: "8 vCPU, 32 GB RAM, 320 GB NVMe cloud instance", Category: "CLOUD", Price: decimal.NewFromInt(180), SortOrder: 2},
		{ID: "object-storage-1tb", Name: "Object Storage 1 TB", Description: "S3-compatible storage with global CDN", Category: "CLOUD", Price: decimal.NewFromInt(25), SortOrder: 3},
		{ID: "gpu-a100", Name: "GPU Server A100", Description: "1x NVIDIA A100 80 GB for training and inference", Category: "AI", Price: decimal.NewFromInt(1450), SortOrder: 4},
		{ID: "ml-pipeline", Name: "Managed ML Pipeline", Description: "Hosted training, tracking and model registry", Category: "AI", Price: decimal.RequireFromString("299.99"), SortOrder: 5},
		{ID: "llm-endpoint", Name: "LLM Inference Endpoint", Description: "Dedicated autoscaling inference endpoint", Category: "AI", Price: decimal.NewFromInt(499), SortOrder: 6},
		{ID: "private-network", Name: "Private Network", Description: "Isolated VPC with site-to-site VPN", Category: "NETWORK", Price: decimal.NewFromInt(40), SortOrder: 7},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("sort_order").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListByCategory(ctx context.Context, category string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("sort_order").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
