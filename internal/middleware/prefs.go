package middleware

import (
	"context"
	"net/http"

	"github.com/tusfactus/factus/internal/currency"
	"github.com/tusfactus/factus/internal/i18n"
)

type ctxKey string

const (
	ctxLang     ctxKey = "pref_lang"
	ctxCurrency ctxKey = "pref_currency"
	ctxTheme    ctxKey = "pref_theme"
)

const (
	defaultTheme = "light"
	cookieMaxAge = 86400 * 30
)

// Prefs resolves the three per-browser preferences (language, currency,
// theme) with precedence query > cookie > Accept-Language/default, stores
// them in the request context and persists query-provided values in
// cookies for ~30 days. Nothing else reads or writes these cookies.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := resolve(w, r, "lang", i18n.Supported)
		if lang == "" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}

		cur := resolve(w, r, "currency", currency.Valid)
		if cur == "" {
			cur = currency.Default
		}

		theme := resolve(w, r, "theme", func(v string) bool { return v == "light" || v == "dark" })
		if theme == "" {
			theme = defaultTheme
		}

		ctx := context.WithValue(r.Context(), ctxLang, lang)
		ctx = context.WithValue(ctx, ctxCurrency, cur)
		ctx = context.WithValue(ctx, ctxTheme, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve returns the preference from query param (persisting it) or
// cookie, empty when neither holds a valid value.
func resolve(w http.ResponseWriter, r *http.Request, name string, valid func(string) bool) string {
	if qv := r.URL.Query().Get(name); qv != "" && valid(qv) {
		http.SetCookie(w, &http.Cookie{Name: name, Value: qv, Path: "/", MaxAge: cookieMaxAge})
		return qv
	}
	if c, err := r.Cookie(name); err == nil && valid(c.Value) {
		return c.Value
	}
	return ""
}

// LangFrom returns the language preference from context or the default.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return i18n.Default
}

// CurrencyFrom returns the currency preference from context or the default.
func CurrencyFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxCurrency).(string); ok && v != "" {
		return v
	}
	return currency.Default
}

// ThemeFrom returns the theme preference from context or the default.
func ThemeFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxTheme).(string); ok && v != "" {
		return v
	}
	return defaultTheme
}
