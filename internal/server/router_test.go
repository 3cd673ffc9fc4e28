package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/auth"
	"github.com/fakturabok/billing/internal/billing"
	"github.com/fakturabok/billing/internal/db"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
	"github.com/fakturabok/billing/internal/tax"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB, *models.Project) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	stores := repo.New(conn)
	if err := stores.Company.Save(&models.CompanyProfile{Name: "Smedejern ApS", CVR: "11223344"}); err != nil {
		t.Fatalf("profile: %v", err)
	}
	client, _ := models.NewClient("Byggefirma Nord ApS", "Mette Holm", "mette@byggenord.dk", "+4520304050")
	client.CVR = "38129045"
	if err := stores.Clients.Add(client); err != nil {
		t.Fatalf("client: %v", err)
	}
	project, _ := models.NewProject(client.ID, "Warehouse renovation", "")
	if err := stores.Projects.Add(project); err != nil {
		t.Fatalf("project: %v", err)
	}
	earning, _ := models.NewEarning(project.ID, "Roofing work", decimal.NewFromInt(1000), time.Now())
	if err := stores.Earnings.Add(earning); err != nil {
		t.Fatalf("earning: %v", err)
	}
	engine := billing.NewEngine(conn, tax.NewPolicy(tax.DefaultRate), 14)
	return New(conn, engine), conn, project
}

func sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	auth.CreateSession(rec, 1)
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}
	return cookies[0]
}

func TestInvoiceRoutesRejectGet(t *testing.T) {
	handler, conn, project := setupRouter(t)
	cookie := sessionCookie(t)

	for _, path := range []string{"/invoices/generate", "/invoices/pdf?project_id=" + project.ID} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s = %d, want 405", path, w.Code)
		}
		if allow := w.Header().Get("Allow"); allow != "POST" {
			t.Errorf("GET %s Allow = %q, want POST", path, allow)
		}
	}
	// A bounced request must not have settled anything.
	earnings, err := repo.New(conn).Earnings.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("list earnings: %v", err)
	}
	for _, e := range earnings {
		if e.IsSettled {
			t.Errorf("earning %s settled by a rejected request", e.ID)
		}
	}
}

func TestInvoiceGenerateThroughRouter(t *testing.T) {
	handler, _, project := setupRouter(t)
	cookie := sessionCookie(t)

	body := fmt.Sprintf(`{"project_id":%q}`, project.ID)
	req := httptest.NewRequest(http.MethodPost, "/invoices/generate", strings.NewReader(body))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestProtectedRouteRequiresSession(t *testing.T) {
	handler, _, project := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/invoices/pdf?project_id="+project.ID, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no session = %d, want 401", w.Code)
	}
}
