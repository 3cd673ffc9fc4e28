package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fakturabok/billing/internal/models"
)

// InvoiceLine is one billed earning. Quantity is fixed at 1: earnings
// are billed as whole line items, not per unit.
type InvoiceLine struct {
	EarningID   string          `json:"earning_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// Issuer is the "from" party copied out of the company profile.
type Issuer struct {
	Name          string `json:"name"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Country       string `json:"country"`
	CVR           string `json:"cvr"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BankName      string `json:"bank_name,omitempty"`
	BankRegNo     string `json:"bank_reg_no,omitempty"`
	BankAccountNo string `json:"bank_account_no,omitempty"`
}

// BilledTo is the "to" party copied out of the client. Attention is set
// for business clients only (company name primary, contact secondary).
type BilledTo struct {
	Name       string `json:"name"`
	Attention  string `json:"attention,omitempty"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
	CVR        string `json:"cvr,omitempty"`
}

// InvoiceSnapshot is the immutable result of one billing run. It is
// computed by the engine after the settlement transition commits and is
// the only input the renderer needs.
type InvoiceSnapshot struct {
	Number      string          `json:"number"`
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
	Lines       []InvoiceLine   `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
	IsBusiness  bool            `json:"is_business"`
	Issuer      Issuer          `json:"issuer"`
	BilledTo    BilledTo        `json:"billed_to"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// InvoiceNumber derives the invoice number from the project identifier:
// "FA-" plus the first 8 hex characters of the UUID, uppercased.
// Deterministic per project; global uniqueness is out of scope.
func InvoiceNumber(projectID string) string {
	hex := strings.ReplaceAll(projectID, "-", "")
	if len(hex) > 8 {
		hex = hex[:8]
	}
	return "FA-" + strings.ToUpper(hex)
}

func issuerFromProfile(p *models.CompanyProfile) Issuer {
	return Issuer{
		Name:          p.Name,
		Street:        p.Street,
		PostalCode:    p.PostalCode,
		City:          p.City,
		Country:       p.Country,
		CVR:           p.CVR,
		Email:         p.Email,
		Phone:         p.Phone,
		BankName:      p.BankName,
		BankRegNo:     p.BankRegNo,
		BankAccountNo: p.BankAccountNo,
	}
}

func billedToFromClient(c *models.Client) BilledTo {
	b := BilledTo{
		Name:       c.DisplayName(),
		Street:     c.Street,
		PostalCode: c.PostalCode,
		City:       c.City,
		Country:    c.Country,
		CVR:        c.CVR,
	}
	if c.IsBusiness() {
		b.Attention = c.ContactPerson
	}
	return b
}
