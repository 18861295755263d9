package repository

import (
	"context"
	"quote-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	GetItems(ctx context.Context, ownerID string) ([]model.CartItem, error)
	AddItem(ctx context.Context, item *model.CartItem) error
	RemoveItem(ctx context.Context, ownerID, productID string) (bool, error)
	DeleteCart(ctx context.Context, ownerID string) error
	CountItems(ctx context.Context, ownerID string) (int64, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) GetItems(ctx context.Context, ownerID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// AddItem is a no-op when the product is already in the owner's cart.
func (r *cartRepoImpl) AddItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (r *cartRepoImpl) RemoveItem(ctx context.Context, ownerID, productID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Delete(&model.CartItem{})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *cartRepoImpl) DeleteCart(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) CountItems(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error

	return count, err
}
