package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fakturabok/billing/internal/validation"
)

// Earning is an income line on a project. Once settled it is frozen:
// amount and description can no longer change, and the record must not
// be deleted (it backs an issued invoice).
type Earning struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	ProjectID   string          `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date        time.Time       `gorm:"not null"`
	IsSettled   bool            `gorm:"not null;default:false"`
	SettledAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEarning constructs a validated, unsettled earning.
func NewEarning(projectID, description string, amount decimal.Decimal, date time.Time) (*Earning, error) {
	e := &Earning{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Earning) Validate() error {
	v := validation.Violations{}
	validation.Required("description", e.Description, v)
	validation.Required("project_id", e.ProjectID, v)
	validation.PositiveAmount("amount", e.Amount, v)
	if e.Date.IsZero() {
		v["date"] = "required"
	}
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// Settle transitions the earning to settled. The transition is
// one-directional; settling an already settled record is a conflict.
func (e *Earning) Settle(at time.Time) error {
	if e.IsSettled {
		return &StateConflictError{Msg: "earning is already settled"}
	}
	e.IsSettled = true
	e.SettledAt = &at
	return nil
}

// UpdateDetails changes description and amount on an unsettled earning.
func (e *Earning) UpdateDetails(description string, amount decimal.Decimal) error {
	if e.IsSettled {
		return &StateConflictError{Msg: "cannot modify a settled earning"}
	}
	updated := *e
	updated.Description = strings.TrimSpace(description)
	updated.Amount = amount
	if err := updated.Validate(); err != nil {
		return err
	}
	e.Description = updated.Description
	e.Amount = updated.Amount
	return nil
}
