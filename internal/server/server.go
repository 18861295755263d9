package server

import (
	"context"

	"quote-storefront/internal/handler"
	"quote-storefront/internal/logger"
	"quote-storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Page *handler.PageHandler
	Auth *handler.AuthHandler
	Cart *handler.CartHandler
	Gate *handler.GateHandler
}

type Server struct {
	echo     *echo.Echo
	handlers Handlers
	guard    *middleware.GateGuard
}

func NewServer(
	renderer echo.Renderer,
	handlers Handlers,
	guard *middleware.GateGuard,
	session echo.MiddlewareFunc,
	secureCookies bool,
	log *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(echomw.Recover())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Visitor(secureCookies))
	e.Use(session)

	s := &Server{
		echo:     e,
		handlers: handlers,
		guard:    guard,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	h := s.handlers

	api := s.echo.Group("/api")
	api.GET("/health", h.Page.Health)

	// -------- public --------
	s.echo.GET("/services", h.Page.Services)
	s.echo.GET("/contact", h.Page.Contact)
	s.echo.GET("/signin", h.Auth.SignInPage)
	s.echo.POST("/signin", h.Auth.SignIn)
	s.echo.GET("/signup", h.Auth.SignUpPage)
	s.echo.POST("/signup", h.Auth.SignUp)
	s.echo.POST("/signout", h.Auth.SignOut)
	s.echo.POST("/cart/items", h.Cart.AddItem)
	s.echo.POST("/gate/retry", h.Gate.Retry)

	// -------- behind the location gate --------
	gate := s.guard.Middleware()
	s.echo.GET("/", h.Page.Home, gate)
	s.echo.GET("/products", h.Page.Products, gate)
	s.echo.GET("/cart", h.Cart.Show, gate)
	s.echo.POST("/cart/items/:id/delete", h.Cart.RemoveItem, gate)
	s.echo.POST("/cart/proceed", h.Cart.Proceed, gate)
	s.echo.POST("/cart/signin", h.Cart.SignIn, gate)
	s.echo.POST("/cart/complete", h.Cart.Complete, gate)
	s.echo.POST("/cart/continue", h.Cart.Continue, gate)

	s.echo.RouteNotFound("/*", h.Page.NotFound)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
