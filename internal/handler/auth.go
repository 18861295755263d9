package handler

import (
	"errors"
	"net/http"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/cart"
	"quote-storefront/internal/dto"
	"quote-storefront/internal/middleware"
	"quote-storefront/internal/service"
	"quote-storefront/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService service.UserService
	tokens      *auth.TokenService
	store       cart.Store
	secure      bool
	log         *zap.Logger
}

func NewAuthHandler(userService service.UserService, tokens *auth.TokenService, store cart.Store, secure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		store:       store,
		secure:      secure,
		log:         log,
	}
}

func (h *AuthHandler) SignInPage(c echo.Context) error {
	return h.renderSignIn(c, http.StatusOK, view.AuthForm{Action: "/signin"})
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	user, err := h.userService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if status, ok := formStatus(err); ok {
			return h.renderSignIn(c, status, view.AuthForm{Action: "/signin", Email: req.Email, Error: auth.Message(err)})
		}
		return err
	}

	if err := middleware.StartSession(c, h.tokens, user, h.secure); err != nil {
		return err
	}
	h.log.Info("user signed in", zap.String("user_id", user.ID))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) SignUpPage(c echo.Context) error {
	return h.renderSignUp(c, http.StatusOK, view.AuthForm{Action: "/signup"})
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	user, err := h.userService.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		if status, ok := formStatus(err); ok {
			return h.renderSignUp(c, status, view.AuthForm{
				Action:      "/signup",
				Email:       req.Email,
				DisplayName: req.DisplayName,
				Error:       auth.Message(err),
			})
		}
		return err
	}

	if err := middleware.StartSession(c, h.tokens, user, h.secure); err != nil {
		return err
	}
	h.log.Info("user signed up", zap.String("user_id", user.ID))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	middleware.ClearSession(c, h.secure)
	return c.Redirect(http.StatusSeeOther, "/services")
}

func (h *AuthHandler) renderSignIn(c echo.Context, status int, form view.AuthForm) error {
	return c.Render(status, "signin.html", view.Page{
		Title:  "Sign In",
		Header: header(c, h.store, h.log),
		Data:   form,
	})
}

func (h *AuthHandler) renderSignUp(c echo.Context, status int, form view.AuthForm) error {
	return c.Render(status, "signup.html", view.Page{
		Title:  "Sign Up",
		Header: header(c, h.store, h.log),
		Data:   form,
	})
}

// formStatus maps provider errors to the status of the re-rendered form.
func formStatus(err error) (int, bool) {
	var authErr *auth.Error
	if !errors.As(err, &authErr) {
		return 0, false
	}
	switch authErr.Code {
	case auth.CodeInvalidCredentials:
		return http.StatusUnauthorized, true
	case auth.CodeEmailInUse:
		return http.StatusConflict, true
	default:
		return http.StatusUnprocessableEntity, true
	}
}
