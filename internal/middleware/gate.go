package middleware

import (
	"context"
	"net/http"

	"quote-storefront/internal/gate"
	"quote-storefront/internal/registry"
	"quote-storefront/internal/service"
	"quote-storefront/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const gateRefreshSeconds = 1

// GateGuard holds protected routes behind each visitor's location gate.
type GateGuard struct {
	ctx      context.Context
	gates    *registry.Registry[*gate.Gate]
	tracking service.TrackingService
	log      *zap.Logger
}

// NewGateGuard returns a guard whose tracking calls run under ctx, which should
// live as long as the server.
func NewGateGuard(ctx context.Context, gates *registry.Registry[*gate.Gate], tracking service.TrackingService, log *zap.Logger) *GateGuard {
	return &GateGuard{
		ctx:      ctx,
		gates:    gates,
		tracking: tracking,
		log:      log,
	}
}

// Middleware renders the gate screens in place of protected pages. A visitor
// whose cookie has not come back yet gets no gate and no tracking call, only
// the loading page until the browser returns the cookie.
func (g *GateGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := gate.Snapshot{State: gate.Loading}
			if !IsNewVisitor(c) {
				snap = g.gateFor(c).Snapshot()
			}
			if snap.Allows() {
				return next(c)
			}

			if c.Request().Method != http.MethodGet {
				return c.Redirect(http.StatusSeeOther, "/")
			}

			page := view.Page{
				Title: snap.Title(),
				Bare:  true,
				Data:  view.Gate{Snapshot: snap, Next: c.Request().URL.Path},
			}
			if snap.State == gate.Denied {
				return c.Render(http.StatusForbidden, "gate_denied.html", page)
			}
			page.Refresh = gateRefreshSeconds
			return c.Render(http.StatusOK, "gate_loading.html", page)
		}
	}
}

// Retry re-runs the tracking call for a denied visitor. It reports false when
// the visitor has no denied gate.
func (g *GateGuard) Retry(visitorID string) bool {
	gt, ok := g.gates.Get(visitorID)
	if !ok {
		return false
	}
	if err := gt.Retry(); err != nil {
		return false
	}
	go gt.Check(g.ctx)
	return true
}

// gateFor returns the visitor's gate. A new gate starts its one tracking call
// in the background.
func (g *GateGuard) gateFor(c echo.Context) *gate.Gate {
	req := c.Request()
	visitor := service.Visitor{
		ID:        VisitorID(c),
		IP:        c.RealIP(),
		UserAgent: req.UserAgent(),
		Language:  req.Header.Get("Accept-Language"),
		Referer:   req.Referer(),
		Path:      req.URL.Path,
	}

	gt, created := g.gates.GetOrCreate(visitor.ID, func() *gate.Gate {
		check := func(ctx context.Context) error {
			return g.tracking.TrackUserInfo(ctx, visitor)
		}
		return gate.New(check, g.log.With(zap.String("visitor_id", visitor.ID)))
	})
	if created {
		go gt.Check(g.ctx)
	}
	return gt
}
