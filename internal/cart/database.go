package cart

import (
	"context"
	"fmt"

	"quote-storefront/internal/model"
	"quote-storefront/internal/repository"
)

type databaseStore struct {
	repo repository.CartRepository
}

func NewDatabaseStore(repo repository.CartRepository) Store {
	return &databaseStore{repo: repo}
}

func (s *databaseStore) Items(ctx context.Context, ownerID string) ([]model.CartItem, error) {
	items, err := s.repo.GetItems(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	return items, nil
}

func (s *databaseStore) Add(ctx context.Context, ownerID string, item model.CartItem) error {
	item.ID = 0
	item.OwnerID = ownerID
	if err := s.repo.AddItem(ctx, &item); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (s *databaseStore) RemoveItem(ctx context.Context, ownerID, itemID string) error {
	removed, err := s.repo.RemoveItem(ctx, ownerID, itemID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *databaseStore) ClearCart(ctx context.Context, ownerID string) error {
	if err := s.repo.DeleteCart(ctx, ownerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *databaseStore) ItemCount(ctx context.Context, ownerID string) (int, error) {
	count, err := s.repo.CountItems(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("count cart items: %w", err)
	}
	return int(count), nil
}
