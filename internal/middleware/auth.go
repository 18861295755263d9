package middleware

import (
	"net/http"

	"quote-storefront/internal/auth"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "session"
	userKey       = "user"
)

// Session resolves the session cookie to the signed-in user. Requests without a
// valid token go through as guests; a stale cookie is cleared.
func Session(tokens *auth.TokenService, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := tokens.Parse(cookie.Value)
			if err != nil {
				ClearSession(c, secure)
				return next(c)
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the signed-in user, or nil for guests.
func CurrentUser(c echo.Context) *auth.User {
	user, _ := c.Get(userKey).(*auth.User)
	return user
}

// StartSession issues a token for user and stores it in the session cookie.
func StartSession(c echo.Context, tokens *auth.TokenService, user *auth.User, secure bool) error {
	token, err := tokens.Issue(user)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(userKey, user)
	return nil
}

func ClearSession(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(userKey, nil)
}
