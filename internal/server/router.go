package server

import (
	"log"
	"net/http"
	"time"

	"github.com/tusfactus/factus/internal/handlers"
	"github.com/tusfactus/factus/internal/httpx"
	"github.com/tusfactus/factus/internal/middleware"
	"github.com/tusfactus/factus/internal/view"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. The app is stateless: no session, no storage, only the prefs
// cookies resolved by the middleware.
func New() http.Handler {
	// Templates read prefs through the view resolvers so the two packages
	// stay decoupled.
	view.SetLangResolver(middleware.LangFrom)
	view.SetCurrencyResolver(middleware.CurrencyFrom)
	view.SetThemeResolver(middleware.ThemeFrom)

	mux := http.NewServeMux()

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	ih := handlers.NewInvoiceHandler()
	mux.HandleFunc("/invoice/totals", post(ih.Totals))
	mux.HandleFunc("/invoice/pdf", post(ih.PDF))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		ih.Page(w, r)
	})

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
