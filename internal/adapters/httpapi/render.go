package httpapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// EmbeddedStatic is the built-in asset tree (app.js, app.css) rooted at "static".
func EmbeddedStatic() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var viewFuncs = template.FuncMap{
	"formatDate": func(d domain.Date, fallback string) string { return domain.DisplayDate(d, fallback) },
	"isoDate":    domain.ISODate,
	"money":      func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
	"entry": func(v any) (string, error) {
		b, err := json.Marshal(formEntry(v))
		return string(b), err
	},
}

// views holds one template set per page, each parsed together with the shared layout.
type views struct {
	pages map[string]*template.Template
}

func parseViews() (*views, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	v := &views{pages: make(map[string]*template.Template)}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".html")
		if name == "layout" {
			continue
		}
		t, err := template.New(name).Funcs(viewFuncs).ParseFS(templateFS, "templates/layout.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// page is the data every template receives; Data carries the page-specific view.
type page struct {
	Title          string
	Path           string
	Error          string
	Success        string
	CSRFField      template.HTML
	IdempotencyKey string
	Data           any
}

func newPage(r *http.Request, title string, data any) page {
	q := r.URL.Query()
	return page{
		Title:          title,
		Path:           r.URL.Path,
		Error:          q.Get("error"),
		Success:        q.Get("success"),
		CSRFField:      csrf.TemplateField(r),
		IdempotencyKey: uuid.NewString(),
		Data:           data,
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, p page) {
	t, ok := s.views.pages[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
