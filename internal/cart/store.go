// Package cart holds visitor carts. Carts are keyed by the visitor id, so a cart
// survives sign-in and sign-out in the same browser.
package cart

import (
	"context"
	"errors"

	"quote-storefront/internal/model"
)

var ErrNotFound = errors.New("cart item not found")

type Store interface {
	Items(ctx context.Context, ownerID string) ([]model.CartItem, error)
	Add(ctx context.Context, ownerID string, item model.CartItem) error
	RemoveItem(ctx context.Context, ownerID, itemID string) error
	ClearCart(ctx context.Context, ownerID string) error
	ItemCount(ctx context.Context, ownerID string) (int, error)
}

// Cart is a Store bound to one owner.
type Cart struct {
	store   Store
	ownerID string
}

func Bind(store Store, ownerID string) *Cart {
	return &Cart{store: store, ownerID: ownerID}
}

func (c *Cart) Items(ctx context.Context) ([]model.CartItem, error) {
	return c.store.Items(ctx, c.ownerID)
}

func (c *Cart) RemoveItem(ctx context.Context, itemID string) error {
	return c.store.RemoveItem(ctx, c.ownerID, itemID)
}

func (c *Cart) ClearCart(ctx context.Context) error {
	return c.store.ClearCart(ctx, c.ownerID)
}

func (c *Cart) ItemCount(ctx context.Context) (int, error) {
	return c.store.ItemCount(ctx, c.ownerID)
}
