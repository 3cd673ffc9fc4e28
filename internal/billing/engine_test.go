package billing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/db"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
	"github.com/fakturabok/billing/internal/tax"
)

func setupEngineDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// seedProject creates a company profile, a client (business or private)
// and a project with two unsettled earnings of 1000 and 500.
func seedProject(t *testing.T, conn *gorm.DB, business bool) *models.Project {
	t.Helper()
	stores := repo.New(conn)
	if err := stores.Company.Save(&models.CompanyProfile{
		Name: "Smedejern ApS", CVR: "11223344",
		BankName: "Sparbank", BankRegNo: "1234", BankAccountNo: "5678901234",
	}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	client, err := models.NewClient("Byggefirma Nord ApS", "Mette Holm", "mette@byggenord.dk", "+4520304050")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if business {
		client.CVR = "38129045"
	} else {
		client.CompanyName = ""
		client.CVR = ""
	}
	if err := stores.Clients.Add(client); err != nil {
		t.Fatalf("add client: %v", err)
	}
	project, err := models.NewProject(client.ID, "Warehouse renovation", "")
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	if err := stores.Projects.Add(project); err != nil {
		t.Fatalf("add project: %v", err)
	}
	for _, amount := range []int64{1000, 500} {
		e, eerr := models.NewEarning(project.ID, fmt.Sprintf("work for %d", amount), decimal.NewFromInt(amount), time.Now())
		if eerr != nil {
			t.Fatalf("new earning: %v", eerr)
		}
		if err := stores.Earnings.Add(e); err != nil {
			t.Fatalf("add earning: %v", err)
		}
	}
	return project
}

func newTestEngine(conn *gorm.DB) *Engine {
	return NewEngine(conn, tax.NewPolicy(tax.DefaultRate), 14)
}

func TestGenerateInvoice_BusinessClient(t *testing.T) {
	conn := setupEngineDB(t)
	project := seedProject(t, conn, true)
	engine := newTestEngine(conn)

	snapshot, err := engine.GenerateInvoice(project.ID)
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}
	if len(snapshot.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(snapshot.Lines))
	}
	if !snapshot.Subtotal.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("subtotal = %s, want 1500", snapshot.Subtotal)
	}
	if !snapshot.TaxAmount.Equal(decimal.NewFromInt(375)) {
		t.Errorf("tax = %s, want 375", snapshot.TaxAmount)
	}
	if !snapshot.Total.Equal(decimal.NewFromInt(1875)) {
		t.Errorf("total = %s, want 1875", snapshot.Total)
	}
	if !snapshot.IsBusiness {
		t.Error("expected business snapshot")
	}
	if snapshot.BilledTo.Attention != "Mette Holm" {
		t.Errorf("attention = %q", snapshot.BilledTo.Attention)
	}
	wantDue := snapshot.IssueDate.AddDate(0, 0, 14)
	if !snapshot.DueDate.Equal(wantDue) {
		t.Errorf("due date = %v, want %v", snapshot.DueDate, wantDue)
	}

	// Every billed earning must be durably settled.
	earnings, err := repo.New(conn).Earnings.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("list earnings: %v", err)
	}
	for _, e := range earnings {
		if !e.IsSettled || e.SettledAt == nil {
			t.Errorf("earning %s not settled after generation", e.ID)
		}
	}
}

func TestGenerateInvoice_PrivateClient(t *testing.T) {
	conn := setupEngineDB(t)
	project := seedProject(t, conn, false)
	engine := newTestEngine(conn)

	snapshot, err := engine.GenerateInvoice(project.ID)
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}
	if !snapshot.Subtotal.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("subtotal = %s, want 1500", snapshot.Subtotal)
	}
	if !snapshot.TaxAmount.IsZero() {
		t.Errorf("tax = %s, want 0", snapshot.TaxAmount)
	}
	if !snapshot.Total.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("total = %s, want 1500", snapshot.Total)
	}
	if snapshot.IsBusiness {
		t.Error("expected private snapshot")
	}
	// Private clients are billed under the contact person's name.
	if snapshot.BilledTo.Name != "Mette Holm" {
		t.Errorf("billed-to name = %q", snapshot.BilledTo.Name)
	}
	if snapshot.BilledTo.Attention != "" {
		t.Errorf("attention set for private client: %q", snapshot.BilledTo.Attention)
	}
}

func TestGenerateInvoice_SecondRunBillsNothing(t *testing.T) {
	conn := setupEngineDB(t)
	project := seedProject(t, conn, true)
	engine := newTestEngine(conn)

	if _, err := engine.GenerateInvoice(project.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.GenerateInvoice(project.ID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Lines) != 0 {
		t.Errorf("second run billed %d lines, want 0", len(second.Lines))
	}
	if !second.Total.IsZero() {
		t.Errorf("second run total = %s, want 0", second.Total)
	}
}

func TestGenerateInvoice_NewEarningsBetweenRuns(t *testing.T) {
	conn := setupEngineDB(t)
	project := seedProject(t, conn, true)
	engine := newTestEngine(conn)

	if _, err := engine.GenerateInvoice(project.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	late, _ := models.NewEarning(project.ID, "extra work", decimal.NewFromInt(200), time.Now())
	if err := repo.New(conn).Earnings.Add(late); err != nil {
		t.Fatalf("add late earning: %v", err)
	}
	second, err := engine.GenerateInvoice(project.ID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Lines) != 1 || second.Lines[0].EarningID != late.ID {
		t.Fatalf("second run billed wrong lines: %+v", second.Lines)
	}
	if !second.Subtotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("second subtotal = %s, want 200", second.Subtotal)
	}
}

func TestGenerateInvoice_UnknownProject(t *testing.T) {
	conn := setupEngineDB(t)
	engine := newTestEngine(conn)
	var nferr *models.NotFoundError
	if _, err := engine.GenerateInvoice("3b1d1f08-0000-0000-0000-000000000000"); !errors.As(err, &nferr) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestGenerateInvoice_MissingCompanyProfile(t *testing.T) {
	conn := setupEngineDB(t)
	project := seedProject(t, conn, true)
	// Remove the profile again to simulate an unconfigured system.
	if err := conn.Exec("DELETE FROM company_profiles").Error; err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	engine := newTestEngine(conn)

	var perr *models.PreconditionError
	if _, err := engine.GenerateInvoice(project.ID); !errors.As(err, &perr) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	// Nothing may have been mutated.
	earnings, _ := repo.New(conn).Earnings.ListByProject(project.ID)
	for _, e := range earnings {
		if e.IsSettled {
			t.Errorf("earning %s settled despite precondition failure", e.ID)
		}
	}
}

func TestGenerateInvoice_SettlementFailureRollsBack(t *testing.T) {
	conn := setupEngineDB(t)
	project := seedProject(t, conn, true)
	// Block the settlement write so the transaction aborts mid-flight.
	if err := conn.Exec(`CREATE TRIGGER block_settle BEFORE UPDATE ON earnings
		BEGIN SELECT RAISE(ABORT, 'settlement blocked'); END`).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}
	engine := newTestEngine(conn)

	snapshot, err := engine.GenerateInvoice(project.ID)
	var serr *models.SettlementError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SettlementError, got %v", err)
	}
	if serr.Partial {
		t.Error("Partial = true after full rollback")
	}
	if snapshot != nil {
		t.Errorf("snapshot returned despite failed settlement: %+v", snapshot)
	}
	// The whole transaction rolled back; no earning is durably settled.
	earnings, err := repo.New(conn).Earnings.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("list earnings: %v", err)
	}
	if len(earnings) != 2 {
		t.Fatalf("earnings = %d, want 2", len(earnings))
	}
	for _, e := range earnings {
		if e.IsSettled || e.SettledAt != nil {
			t.Errorf("earning %s settled despite rolled-back settlement", e.ID)
		}
	}
}

func TestInvoiceNumber(t *testing.T) {
	got := InvoiceNumber("3b1d1f08-9c4a-4a0f-8b1e-2f0d5c6a7b8c")
	if got != "FA-3B1D1F08" {
		t.Errorf("InvoiceNumber() = %q, want FA-3B1D1F08", got)
	}
	// Deterministic per project.
	if again := InvoiceNumber("3b1d1f08-9c4a-4a0f-8b1e-2f0d5c6a7b8c"); again != got {
		t.Errorf("InvoiceNumber not deterministic: %q vs %q", again, got)
	}
}
