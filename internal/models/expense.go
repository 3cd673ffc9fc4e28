package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fakturabok/billing/internal/validation"
)

type ExpenseCategory string

const (
	CategoryMaterials     ExpenseCategory = "materials"
	CategoryLabor         ExpenseCategory = "labor"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryTools         ExpenseCategory = "tools"
	CategorySubcontractor ExpenseCategory = "subcontractor"
	CategoryOther         ExpenseCategory = "other"
)

// Expense is a cost line on a project. Acceptance is a separate approval
// workflow and has no bearing on invoicing.
type Expense struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	ProjectID   string          `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date        time.Time       `gorm:"not null"`
	Category    ExpenseCategory `gorm:"type:varchar(20);not null"`
	IsAccepted  bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense constructs a validated, unaccepted expense.
func NewExpense(projectID, description string, amount decimal.Decimal, date time.Time, category ExpenseCategory) (*Expense, error) {
	x := &Expense{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        date,
		Category:    category,
	}
	if err := x.Validate(); err != nil {
		return nil, err
	}
	return x, nil
}

func (x *Expense) Validate() error {
	v := validation.Violations{}
	validation.Required("description", x.Description, v)
	validation.Required("project_id", x.ProjectID, v)
	validation.PositiveAmount("amount", x.Amount, v)
	if x.Date.IsZero() {
		v["date"] = "required"
	}
	switch x.Category {
	case CategoryMaterials, CategoryLabor, CategoryTransport, CategoryTools, CategorySubcontractor, CategoryOther:
	default:
		v["category"] = "unknown_category"
	}
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// Accept marks the expense as approved.
func (x *Expense) Accept() { x.IsAccepted = true }
