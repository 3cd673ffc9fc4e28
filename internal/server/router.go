package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/auth"
	"github.com/fakturabok/billing/internal/billing"
	"github.com/fakturabok/billing/internal/handlers"
	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/repo"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(conn *gorm.DB, engine *billing.Engine) http.Handler {
	mux := http.NewServeMux()
	stores := repo.New(conn)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := conn.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.OK(w, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(conn)
	mux.HandleFunc("/login", ah.Login)
	mux.HandleFunc("/logout", ah.Logout)

	// Company profile setup
	sh := handlers.NewSetupHandler(stores)
	mux.Handle("/setup", protect(http.HandlerFunc(sh.Handle)))

	// Clients
	ch := handlers.NewClientHandler(stores)
	mux.Handle("/clients", protect(listCreate(ch.List, ch.Create)))
	mux.Handle("/clients/get", protect(http.HandlerFunc(ch.Get)))
	mux.Handle("/clients/update", protect(http.HandlerFunc(ch.Update)))
	mux.Handle("/clients/delete", protect(http.HandlerFunc(ch.Delete)))

	// Projects
	ph := handlers.NewProjectHandler(stores)
	mux.Handle("/projects", protect(listCreate(ph.List, ph.Create)))
	mux.Handle("/projects/get", protect(http.HandlerFunc(ph.Get)))
	mux.Handle("/projects/update", protect(http.HandlerFunc(ph.Update)))
	mux.Handle("/projects/delete", protect(http.HandlerFunc(ph.Delete)))

	// Earnings
	eh := handlers.NewEarningHandler(stores)
	mux.Handle("/earnings", protect(listCreate(eh.List, eh.Create)))
	mux.Handle("/earnings/update", protect(http.HandlerFunc(eh.Update)))
	mux.Handle("/earnings/delete", protect(http.HandlerFunc(eh.Delete)))

	// Expenses
	xh := handlers.NewExpenseHandler(stores)
	mux.Handle("/expenses", protect(listCreate(xh.List, xh.Create)))
	mux.Handle("/expenses/accept", protect(http.HandlerFunc(xh.Accept)))
	mux.Handle("/expenses/delete", protect(http.HandlerFunc(xh.Delete)))

	// Invoicing
	ih := handlers.NewInvoiceHandler(engine)
	mux.Handle("/invoices/generate", protect(postOnly(ih.Generate)))
	mux.Handle("/invoices/pdf", protect(postOnly(ih.PDF)))

	return withLogging(mux)
}

func protect(next http.Handler) http.Handler {
	return auth.Middleware(auth.RequireAuth(next))
}

func listCreate(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

// postOnly guards mutating routes that have no list counterpart.
func postOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
