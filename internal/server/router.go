package server

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/auth"
	"github.com/Harshverma1208/smartech/internal/config"
	"github.com/Harshverma1208/smartech/internal/handlers"
	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/middleware"
	"github.com/Harshverma1208/smartech/internal/operations"
	"github.com/Harshverma1208/smartech/internal/session"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(db *gorm.DB, sessions *session.Collaborator, cfg config.Config, log *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", "")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(sessions, cfg)
	mux.HandleFunc("POST /login", ah.Login)
	mux.HandleFunc("POST /logout", ah.Logout)
	mux.HandleFunc("GET /session", ah.Session)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return auth.RequireAuth(h)
	}

	ch := handlers.NewCustomerHandler(operations.NewCustomers(db))
	mux.Handle("GET /customers", requireAuth(ch.List))
	mux.Handle("POST /customers", requireAuth(ch.Create))
	mux.Handle("GET /customers/{id}", requireAuth(ch.Get))
	mux.Handle("PUT /customers/{id}", requireAuth(ch.Update))
	mux.Handle("DELETE /customers/{id}", requireAuth(ch.Delete))

	ih := handlers.NewInventoryHandler(operations.NewInventory(db))
	mux.Handle("GET /inventory", requireAuth(ih.List))
	mux.Handle("POST /inventory", requireAuth(ih.Create))
	mux.Handle("GET /inventory/{id}", requireAuth(ih.Get))
	mux.Handle("PUT /inventory/{id}", requireAuth(ih.Update))
	mux.Handle("DELETE /inventory/{id}", requireAuth(ih.Delete))

	vh := handlers.NewInvoiceHandler(operations.NewInvoices(db))
	mux.Handle("GET /invoices", requireAuth(vh.List))
	mux.Handle("POST /invoices", requireAuth(vh.Create))
	mux.Handle("GET /invoices/{id}", requireAuth(vh.Get))
	mux.Handle("PUT /invoices/{id}", requireAuth(vh.Update))
	mux.Handle("PATCH /invoices/{id}/status", requireAuth(vh.UpdateStatus))
	mux.Handle("DELETE /invoices/{id}", requireAuth(vh.Delete))

	sh := handlers.NewSalaryHandler(operations.NewSalaries(db))
	mux.Handle("GET /salaries", requireAuth(sh.List))
	mux.Handle("POST /salaries", requireAuth(sh.Create))
	mux.Handle("GET /salaries/{id}", requireAuth(sh.Get))
	mux.Handle("PUT /salaries/{id}", requireAuth(sh.Update))
	mux.Handle("DELETE /salaries/{id}", requireAuth(sh.Delete))

	var h http.Handler = mux
	h = auth.Middleware(cfg.SessionSecret)(h)
	h = middleware.Logging(log)(h)
	h = middleware.RequestID(h)
	h = middleware.Recover(log)(h)
	return h
}
