package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	VisitorCookie = "visitor"
	visitorKey    = "visitor_id"
	newVisitorKey = "visitor_new"
	visitorMaxAge = 365 * 24 * time.Hour
)

// Visitor makes sure every request carries a visitor id. The id keys the
// visitor's cart, location gate and checkout session.
func Visitor(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(VisitorCookie); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.Set(newVisitorKey, true)
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(visitorKey, id)
			return next(c)
		}
	}
}

// VisitorID returns the id set by Visitor, or "" outside of it.
func VisitorID(c echo.Context) string {
	id, _ := c.Get(visitorKey).(string)
	return id
}

// IsNewVisitor reports whether the visitor id was issued on this request, that
// is, the client did not send a valid visitor cookie.
func IsNewVisitor(c echo.Context) bool {
	isNew, _ := c.Get(newVisitorKey).(bool)
	return isNew
}
