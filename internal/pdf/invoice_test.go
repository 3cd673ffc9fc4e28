package pdf

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fakturabok/billing/internal/billing"
	"github.com/fakturabok/billing/internal/models"
)

func sampleSnapshot(business bool) *billing.InvoiceSnapshot {
	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	s := &billing.InvoiceSnapshot{
		Number:      "FA-3B1D1F08",
		ProjectID:   "3b1d1f08-9c4a-4a0f-8b1e-2f0d5c6a7b8c",
		ProjectName: "Warehouse renovation",
		IssueDate:   now,
		DueDate:     now.AddDate(0, 0, 14),
		Lines: []billing.InvoiceLine{
			{EarningID: "e1", Description: "Roofing work, first stage", Quantity: 1, Amount: decimal.NewFromInt(1000)},
			{EarningID: "e2", Description: "Electrical installation", Quantity: 1, Amount: decimal.NewFromInt(500)},
		},
		Subtotal:    decimal.NewFromInt(1500),
		TaxRate:     decimal.New(25, -2),
		TaxAmount:   decimal.NewFromInt(375),
		Total:       decimal.NewFromInt(1875),
		IsBusiness:  business,
		GeneratedAt: now,
		Issuer: billing.Issuer{
			Name: "Smedejern ApS", Street: "Værkstedsvej 3", PostalCode: "5000", City: "Odense",
			CVR: "11223344", BankName: "Sparbank", BankRegNo: "1234", BankAccountNo: "5678901234",
		},
		BilledTo: billing.BilledTo{
			Name: "Byggefirma Nord ApS", Attention: "Mette Holm", Street: "Havnegade 12",
			PostalCode: "9000", City: "Aalborg", CVR: "38129045",
		},
	}
	if !business {
		s.TaxAmount = decimal.Zero
		s.Total = s.Subtotal
		s.BilledTo = billing.BilledTo{Name: "Mette Holm", Street: "Havnegade 12", PostalCode: "9000", City: "Aalborg"}
	}
	return s
}

func TestInvoice_ProducesPDF(t *testing.T) {
	for _, business := range []bool{true, false} {
		doc, err := Invoice(sampleSnapshot(business))
		if err != nil {
			t.Fatalf("business=%v: %v", business, err)
		}
		if !bytes.HasPrefix(doc, []byte("%PDF")) {
			t.Errorf("business=%v: output is not a PDF (starts with %q)", business, doc[:4])
		}
	}
}

func TestInvoice_EmptyLinesStillRenders(t *testing.T) {
	s := sampleSnapshot(true)
	s.Lines = nil
	s.Subtotal = decimal.Zero
	s.TaxAmount = decimal.Zero
	s.Total = decimal.Zero
	doc, err := Invoice(s)
	if err != nil {
		t.Fatalf("zero-line invoice: %v", err)
	}
	if len(doc) == 0 {
		t.Error("empty document")
	}
}

func TestInvoice_ManyLinesPaginate(t *testing.T) {
	s := sampleSnapshot(true)
	s.Lines = nil
	for i := 0; i < 80; i++ {
		s.Lines = append(s.Lines, billing.InvoiceLine{
			EarningID: "e", Description: "Repeated work item", Quantity: 1, Amount: decimal.NewFromInt(10),
		})
	}
	doc, err := Invoice(s)
	if err != nil {
		t.Fatalf("long invoice: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("long invoice is not a PDF")
	}
}

func TestInvoice_RejectsBadSnapshots(t *testing.T) {
	var verr *models.ValidationError
	if _, err := Invoice(nil); !errors.As(err, &verr) {
		t.Errorf("nil snapshot: expected ValidationError, got %v", err)
	}
	s := sampleSnapshot(true)
	s.Issuer.Name = ""
	if _, err := Invoice(s); !errors.As(err, &verr) {
		t.Errorf("missing issuer: expected ValidationError, got %v", err)
	}
}
