// Package view renders the embedded HTML templates. Each page template
// defines a "content" block executed inside the shared layout; login and
// the error page stand alone.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Base carries the fields every page shares: navigation state, the
// logged-in identity and the flash/error banners.
type Base struct {
	Title    string
	Active   string
	UserName string
	UserRole string
	Flash    string
	Error    string
}

var pageNames = []string{
	"dashboard",
	"jornada",
	"producao",
	"ferias",
	"folha",
	"aprovacoes",
	"metas",
	"banco-horas",
	"perfil",
	"relatorios",
	"admin",
}

var standaloneNames = []string{"login"}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := map[string]*template.Template{}

	for _, name := range pageNames {
		tpl, err := template.New("layout.html").Funcs(funcMap()).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}

	for _, name := range standaloneNames {
		tpl, err := template.New(name + ".html").Funcs(funcMap()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page. The template runs into a buffer first
// so a mid-render failure never emits a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	tpl, exists := r.pages[name]
	if !exists {
		slog.Error("unknown template", "name", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		slog.Error("template render failed", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("02/01/2006")
		},
		"clock": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("15:04")
		},
		"hours1": func(v float64) string { return fmt.Sprintf("%.1fh", v) },
		"hours2": func(v float64) string { return fmt.Sprintf("%.2fh", v) },
		"signedHours": func(v float64) string {
			return fmt.Sprintf("%+.1fh", v)
		},
		"roundHours": func(v float64) string {
			return fmt.Sprintf("%dh", int(math.Round(v)))
		},
		"money": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("R$ %.2f", *v)
		},
		"pct": func(p float64) int {
			return int(math.Round(p * 100))
		},
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
		"derefInt": func(v *int) int {
			if v == nil {
				return 0
			}
			return *v
		},
		"orDash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
	}
}
