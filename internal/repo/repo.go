// Package repo provides gorm-backed stores for the domain entities.
// Stores are cheap value-like wrappers around a *gorm.DB; Tx runs a
// function against a transactional set of stores so multi-entity
// mutations commit or roll back as one unit.
package repo

import (
	"strings"

	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/validation"
)

type Stores struct {
	db       *gorm.DB
	Clients  *ClientStore
	Projects *ProjectStore
	Earnings *EarningStore
	Expenses *ExpenseStore
	Company  *CompanyProfileStore
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		db:       db,
		Clients:  &ClientStore{db: db},
		Projects: &ProjectStore{db: db},
		Earnings: &EarningStore{db: db},
		Expenses: &ExpenseStore{db: db},
		Company:  &CompanyProfileStore{db: db},
	}
}

// Tx runs fn against stores bound to a single database transaction.
// Returning an error rolls everything back.
func (s *Stores) Tx(fn func(tx *Stores) error) error {
	return s.db.Transaction(func(txdb *gorm.DB) error {
		return fn(New(txdb))
	})
}

func errNilEntity() error {
	return &models.ValidationError{Violations: validation.Violations{"entity": "required"}}
}

func errBlankID() error {
	return &models.ValidationError{Violations: validation.Violations{"id": "required"}}
}

func blank(id string) bool { return strings.TrimSpace(id) == "" }
