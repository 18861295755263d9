package handler

import (
	"net/http"

	"quote-storefront/internal/cart"
	"quote-storefront/internal/dto"
	"quote-storefront/internal/model"
	"quote-storefront/internal/service"
	"quote-storefront/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PageHandler struct {
	catalogService service.CatalogService
	store          cart.Store
	chatURL        string
	log            *zap.Logger
}

func NewPageHandler(catalogService service.CatalogService, store cart.Store, chatURL string, log *zap.Logger) *PageHandler {
	return &PageHandler{
		catalogService: catalogService,
		store:          store,
		chatURL:        chatURL,
		log:            log,
	}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", view.Page{
		Header: header(c, h.store, h.log),
		Data:   h.chatURL,
	})
}

func (h *PageHandler) Services(c echo.Context) error {
	return h.catalog(c, "services.html", "Services")
}

func (h *PageHandler) Products(c echo.Context) error {
	return h.catalog(c, "products.html", "Products")
}

func (h *PageHandler) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", view.Page{
		Title:  "Contact",
		Header: header(c, h.store, h.log),
		Data:   h.chatURL,
	})
}

func (h *PageHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// NotFound sends unknown paths to the services page.
func (h *PageHandler) NotFound(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/services")
}

// catalog lists every product, or one category when ?category= names a known
// one. Unknown categories fall back to the full list.
func (h *PageHandler) catalog(c echo.Context, tmpl, title string) error {
	ctx := c.Request().Context()

	selected := c.QueryParam("category")
	if !isCategory(selected) {
		selected = ""
	}

	var (
		products []*model.Product
		err      error
	)
	if selected != "" {
		products, err = h.catalogService.ListByCategory(ctx, selected)
	} else {
		products, err = h.catalogService.ListServices(ctx)
	}
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, tmpl, view.Page{
		Title:  title,
		Header: header(c, h.store, h.log),
		Data: view.Catalog{
			Categories: groupByCategory(products),
			Filters:    categories,
			Selected:   selected,
		},
	})
}
