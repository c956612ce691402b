package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Renderer caches the parsed page templates and implements
// echo.Renderer. Every page template is standalone.
type Renderer struct {
	mu    sync.RWMutex
	cache map[string]*template.Template
	funcs template.FuncMap
}

func New() *Renderer {
	return &Renderer{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			"fmtTime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		},
	}
}

func (r *Renderer) AddFunc(name string, fn any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Load parses every *.html file under dir.
func (r *Renderer) Load(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).Funcs(r.funcs).ParseFiles(file)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", file, err)
		}
		r.cache[name] = tmpl
	}
	return nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.mu.RLock()
	tmpl := r.cache[name]
	r.mu.RUnlock()
	if tmpl == nil {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.Execute(w, data)
}
