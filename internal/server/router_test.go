package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Harshverma1208/smartech/internal/config"
	"github.com/Harshverma1208/smartech/internal/models"
	"github.com/Harshverma1208/smartech/internal/session"
)

// setupRouter wires the full handler stack against an in-memory database with
// one seeded admin account.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.InventoryItem{},
		&models.Invoice{},
		&models.SalaryRecord{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err := db.Create(&models.User{Email: "admin@t.dev", Password: string(hash)}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.Config{SessionSecret: "router-test-secret", SessionTTL: time.Hour}
	provider := session.NewStoreProvider(db, cfg.SessionSecret, cfg.SessionTTL)
	col := session.New(provider, log)
	t.Cleanup(col.Close)
	return New(db, col, cfg, log)
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": "admin@t.dev", "password": "hunter2"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestRouterHealth(t *testing.T) {
	h := setupRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	h := setupRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rr.Code)
	}
}

func TestRouterAuthenticatedFlow(t *testing.T) {
	h := setupRouter(t)
	cookie := login(t, h)

	body, _ := json.Marshal(map[string]string{"name": "Acme", "email": "a@t.dev"})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var list struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad list payload: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("expected 1 customer, got %d", list.Total)
	}
}

func TestRouterBearerTokenAccepted(t *testing.T) {
	h := setupRouter(t)
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/salaries", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouterLogout(t *testing.T) {
	h := setupRouter(t)
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodPost, "/logout", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	// The cookie still parses until expiry, but the session endpoint reflects
	// the collaborator: a fresh request without it is anonymous.
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/session", nil))
	var state struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &state); err != nil {
		t.Fatalf("bad session payload: %v", err)
	}
	if state.State != "anonymous" {
		t.Errorf("expected anonymous, got %q", state.State)
	}
}
