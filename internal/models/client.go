package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fakturabok/billing/internal/validation"
)

// Client entity
type Client struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	CompanyName   string `gorm:"index"`    // optional; blank for private clients
	ContactPerson string `gorm:"not null"` // required contact name
	Email         string `gorm:"not null"`
	Phone         string `gorm:"not null"`
	Street        string
	PostalCode    string
	City          string
	Country       string
	CVR           string `gorm:"index"` // tax registration number; empty means private client
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Projects []Project `gorm:"foreignKey:ClientID"`
}

// NewClient constructs a validated client with a fresh identifier.
func NewClient(companyName, contactPerson, email, phone string) (*Client, error) {
	c := &Client{
		ID:            uuid.NewString(),
		CompanyName:   strings.TrimSpace(companyName),
		ContactPerson: strings.TrimSpace(contactPerson),
		Email:         strings.TrimSpace(email),
		Phone:         strings.TrimSpace(phone),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) Validate() error {
	v := validation.Violations{}
	validation.Required("contact_person", c.ContactPerson, v)
	validation.Email("email", c.Email, v)
	validation.Phone("phone", c.Phone, v)
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// IsBusiness reports whether the client is VAT-liable (B2B). Clients
// without a tax registration number are private and billed tax-inclusive.
func (c *Client) IsBusiness() bool {
	return strings.TrimSpace(c.CVR) != ""
}

// DisplayName returns the company name, falling back to the contact
// person when no company name is set.
func (c *Client) DisplayName() string {
	if strings.TrimSpace(c.CompanyName) != "" {
		return c.CompanyName
	}
	return c.ContactPerson
}
