// Package view renders the storefront pages from embedded html/template files.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/checkout"
	"quote-storefront/internal/gate"
	"quote-storefront/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Header is everything the page header shows. Handlers build it explicitly per request.
type Header struct {
	User      *auth.User
	ItemCount int
}

// Name is the label shown for the signed-in user.
func (h Header) Name() string {
	if h.User == nil {
		return ""
	}
	if h.User.DisplayName != "" {
		return h.User.DisplayName
	}
	return h.User.Email
}

type Page struct {
	Title   string
	Header  Header
	Bare    bool // no header, used by the gate screens
	Refresh int  // seconds until the browser reloads, 0 for never
	Notice  string
	Data    any
}

type Category struct {
	ID       string
	Title    string
	Summary  string
	Products []*model.Product
}

type Catalog struct {
	Categories []Category
	// Filters lists every category for the filter bar; Selected is the active
	// one, empty for all.
	Filters  []Category
	Selected string
}

type AuthForm struct {
	Email       string
	DisplayName string
	Error       string
	Action      string
}

type StepView struct {
	checkout.StepInfo
	Number  int
	Current bool
	Done    bool
}

type Cart struct {
	Steps   []StepView
	View    checkout.View
	Items   []model.CartItem
	Total   decimal.Decimal
	User    *auth.User
	ChatURL string
}

// NewCart lays the checkout steps out for the progress indicator.
func NewCart(v checkout.View, items []model.CartItem, user *auth.User, chatURL string) Cart {
	current := v.Step.Index()
	steps := make([]StepView, len(checkout.Steps))
	for i, info := range checkout.Steps {
		steps[i] = StepView{
			StepInfo: info,
			Number:   i + 1,
			Current:  i == current,
			Done:     i < current,
		}
	}
	return Cart{
		Steps:   steps,
		View:    v,
		Items:   items,
		Total:   model.Total(items),
		User:    user,
		ChatURL: chatURL,
	}
}

type Gate struct {
	gate.Snapshot
	Next string
}

var funcs = template.FuncMap{
	"usd": model.FormatUSD,
	"monthly": func(d decimal.Decimal) string {
		return model.FormatUSD(d) + "/mo"
	},
	"lower": strings.ToLower,
}

// Renderer implements echo.Renderer. Every page is parsed together with the
// layout and executed through it.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	layout, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		tmpl, err := template.Must(layout.Clone()).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[path.Base(file)] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, path.Base(layoutFile), data)
}
