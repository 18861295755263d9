package handler

import (
	"errors"
	"net/http"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/cart"
	"quote-storefront/internal/checkout"
	"quote-storefront/internal/dto"
	"quote-storefront/internal/middleware"
	"quote-storefront/internal/model"
	"quote-storefront/internal/registry"
	"quote-storefront/internal/service"
	"quote-storefront/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MachineFactory builds a fresh checkout session for a visitor.
type MachineFactory func(visitorID string) *checkout.Machine

type CartHandler struct {
	store          cart.Store
	catalogService service.CatalogService
	checkouts      *registry.Registry[*checkout.Machine]
	newMachine     MachineFactory
	tokens         *auth.TokenService
	secure         bool
	chatURL        string
	log            *zap.Logger
}

func NewCartHandler(
	store cart.Store,
	catalogService service.CatalogService,
	checkouts *registry.Registry[*checkout.Machine],
	newMachine MachineFactory,
	tokens *auth.TokenService,
	secure bool,
	chatURL string,
	log *zap.Logger,
) *CartHandler {
	return &CartHandler{
		store:          store,
		catalogService: catalogService,
		checkouts:      checkouts,
		newMachine:     newMachine,
		tokens:         tokens,
		secure:         secure,
		chatURL:        chatURL,
		log:            log,
	}
}

// Show renders the checkout at its current step. A finished checkout is
// replaced by a new one.
func (h *CartHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()
	visitorID := middleware.VisitorID(c)

	m := h.machine(visitorID)
	v := m.View()
	if v.Done {
		h.checkouts.Delete(visitorID)
		m = h.machine(visitorID)
		v = m.View()
	}

	items, err := h.store.Items(ctx, visitorID)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "cart.html", view.Page{
		Title:  "Cart",
		Header: view.Header{User: user, ItemCount: len(items)},
		Notice: m.TakeNotice(),
		Data:   view.NewCart(v, items, user, h.chatURL),
	})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing product")
	}

	product, err := h.catalogService.GetProduct(ctx, req.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return err
	}

	if err := h.store.Add(ctx, middleware.VisitorID(c), model.NewCartItem(product)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, safeNext(req.Next, "/services"))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.machine(middleware.VisitorID(c)).RemoveItem(ctx, c.Param("id"))
	if err != nil && !errors.Is(err, checkout.ErrInvalidTransition) && !errors.Is(err, cart.ErrNotFound) {
		return err
	}
	return h.backToCart(c)
}

func (h *CartHandler) Proceed(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.machine(middleware.VisitorID(c)).Proceed(ctx, middleware.CurrentUser(c))
	h.logOutcome("proceed", err)
	return h.backToCart(c)
}

// SignIn authenticates inside the checkout and starts the session on success.
func (h *CartHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	user, err := h.machine(middleware.VisitorID(c)).SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return h.backToCart(c)
	}

	if err := middleware.StartSession(c, h.tokens, user, h.secure); err != nil {
		return err
	}
	return h.backToCart(c)
}

// Complete places the order inside the request. Other requests for the same
// visitor see the payment step as processing until it returns.
func (h *CartHandler) Complete(c echo.Context) error {
	ctx := c.Request().Context()

	_, err := h.machine(middleware.VisitorID(c)).Complete(ctx, middleware.CurrentUser(c))
	h.logOutcome("complete", err)
	return h.backToCart(c)
}

func (h *CartHandler) Continue(c echo.Context) error {
	ctx := c.Request().Context()
	visitorID := middleware.VisitorID(c)

	url, err := h.machine(visitorID).Continue(ctx)
	if errors.Is(err, checkout.ErrInvalidTransition) {
		return h.backToCart(c)
	}
	if err != nil {
		return err
	}

	h.checkouts.Delete(visitorID)
	return c.Redirect(http.StatusSeeOther, url)
}

func (h *CartHandler) machine(visitorID string) *checkout.Machine {
	m, _ := h.checkouts.GetOrCreate(visitorID, func() *checkout.Machine {
		return h.newMachine(visitorID)
	})
	return m
}

func (h *CartHandler) backToCart(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// logOutcome records failures the visitor does not already see as a step error.
func (h *CartHandler) logOutcome(action string, err error) {
	switch {
	case err == nil,
		errors.Is(err, checkout.ErrInvalidTransition),
		errors.Is(err, checkout.ErrProcessing),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotSignedIn),
		errors.Is(err, checkout.ErrNotifyFailed):
		return
	default:
		h.log.Error("checkout action failed", zap.String("action", action), zap.Error(err))
	}
}
