package handler

import (
	"strings"

	"quote-storefront/internal/cart"
	"quote-storefront/internal/middleware"
	"quote-storefront/internal/model"
	"quote-storefront/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var categories = []view.Category{
	{ID: "CLOUD", Title: "Cloud Infrastructure", Summary: "Scalable compute, storage and networking on demand"},
	{ID: "AI", Title: "AI & Machine Learning", Summary: "GPU capacity and managed tooling for training and inference"},
	{ID: "NETWORK", Title: "Networking & Security", Summary: "Private connectivity for your workloads"},
}

// header builds the page header for the current visitor. A failed cart count
// shows as an empty cart.
func header(c echo.Context, store cart.Store, log *zap.Logger) view.Header {
	count, err := store.ItemCount(c.Request().Context(), middleware.VisitorID(c))
	if err != nil {
		log.Warn("count cart items", zap.Error(err))
		count = 0
	}
	return view.Header{
		User:      middleware.CurrentUser(c),
		ItemCount: count,
	}
}

func groupByCategory(products []*model.Product) []view.Category {
	groups := make([]view.Category, 0, len(categories))
	for _, category := range categories {
		for _, p := range products {
			if p.Category == category.ID {
				category.Products = append(category.Products, p)
			}
		}
		if len(category.Products) > 0 {
			groups = append(groups, category)
		}
	}
	return groups
}

func isCategory(id string) bool {
	for _, category := range categories {
		if category.ID == id {
			return true
		}
	}
	return false
}

// safeNext keeps redirects on this site.
func safeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
