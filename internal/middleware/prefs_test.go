package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func prefsProbe(t *testing.T, req *http.Request) (lang, cur, theme string, w *httptest.ResponseRecorder) {
	t.Helper()
	w = httptest.NewRecorder()
	h := Prefs(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		lang, cur, theme = LangFrom(r), CurrencyFrom(r), ThemeFrom(r)
	}))
	h.ServeHTTP(w, req)
	return
}

func TestPrefsDefaults(t *testing.T) {
	lang, cur, theme, _ := prefsProbe(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if lang != "es" || cur != "EUR" || theme != "light" {
		t.Fatalf("defaults = %s/%s/%s, want es/EUR/light", lang, cur, theme)
	}
}

func TestPrefsQueryWinsAndPersists(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=en&currency=USD&theme=dark", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "ca"})
	lang, cur, theme, w := prefsProbe(t, req)
	if lang != "en" || cur != "USD" || theme != "dark" {
		t.Fatalf("prefs = %s/%s/%s, want en/USD/dark", lang, cur, theme)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 3 {
		t.Fatalf("expected 3 persisted cookies, got %d", len(cookies))
	}
}

func TestPrefsInvalidValuesIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=de&currency=BTC&theme=neon", nil)
	lang, cur, theme, w := prefsProbe(t, req)
	if lang != "es" || cur != "EUR" || theme != "light" {
		t.Fatalf("invalid values must fall back, got %s/%s/%s", lang, cur, theme)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("invalid values must not be persisted")
	}
}

func TestPrefsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "ca"})
	req.AddCookie(&http.Cookie{Name: "currency", Value: "GBP"})
	lang, cur, _, _ := prefsProbe(t, req)
	if lang != "ca" || cur != "GBP" {
		t.Fatalf("cookie prefs = %s/%s, want ca/GBP", lang, cur)
	}
}

func TestPrefsAcceptLanguageFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	lang, _, _, _ := prefsProbe(t, req)
	if lang != "en" {
		t.Fatalf("expected Accept-Language detection, got %s", lang)
	}
}
