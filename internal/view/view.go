// Package view renders the form page templates with shared helpers. The
// host app injects preference resolvers so templates can read the current
// language, currency and theme without importing the middleware.
package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tusfactus/factus/internal/i18n"
)

var (
	baseDir string
	once    sync.Once

	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver     = func(_ *http.Request) string { return i18n.Default }
	currencyResolver = func(_ *http.Request) string { return "EUR" }
	themeResolver    = func(_ *http.Request) string { return "light" }
)

// SetLangResolver lets the host app provide a language resolver (e.g.
// reading the prefs context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetCurrencyResolver lets the host app provide a currency resolver.
func SetCurrencyResolver(f func(*http.Request) string) {
	if f != nil {
		currencyResolver = f
	}
}

// SetThemeResolver lets the host app provide a theme resolver.
func SetThemeResolver(f func(*http.Request) string) {
	if f != nil {
		themeResolver = f
	}
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard func map: i18n plus the current prefs.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	cur := currencyResolver(r)
	theme := themeResolver(r)
	return template.FuncMap{
		"t":        func(code string) string { return i18n.T(lang, code) },
		"lang":     func() string { return lang },
		"currency": func() string { return cur },
		"theme":    func() string { return theme },
		"year":     func() int { return time.Now().Year() },
	}
}

// Render parses and executes a template file with shared funcs. Parsed
// templates are cached per name except in DEV mode, where every request
// reparses so edits show up immediately.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}

	devMode := os.Getenv("DEV") == "1"
	// The cache key includes the language: the func map bakes the prefs in.
	key := langResolver(r) + "|" + currencyResolver(r) + "|" + themeResolver(r) + "|" + name
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	t, err := template.New(name).Funcs(Funcs(r)).ParseFiles(filepath.Join(baseDir, name))
	if err != nil {
		return err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	return t.Execute(w, data)
}
