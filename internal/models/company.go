package models

import (
	"time"

	"github.com/fakturabok/billing/internal/validation"
)

// CompanyProfile identifies the issuing business on every invoice.
// Exactly one row exists; it is created once at setup and read on each
// invoice generation.
type CompanyProfile struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Street     string
	PostalCode string
	City       string
	Country    string
	CVR        string `gorm:"not null"` // tax registration number of the issuer
	Email      string
	Phone      string
	// Bank details are optional; the invoice payment block is omitted
	// when they are absent.
	BankName      string
	BankRegNo     string
	BankAccountNo string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *CompanyProfile) Validate() error {
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.Required("cvr", p.CVR, v)
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// HasBankDetails reports whether a payment block can be rendered.
func (p *CompanyProfile) HasBankDetails() bool {
	return p.BankRegNo != "" && p.BankAccountNo != ""
}
