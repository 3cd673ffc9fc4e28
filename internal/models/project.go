package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fakturabok/billing/internal/validation"
)

type ProjectStatus string

const (
	StatusPlanned   ProjectStatus = "planned"
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
	StatusCancelled ProjectStatus = "cancelled"
)

type Project struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	ClientID    string `gorm:"type:uuid;not null;index"`
	Client      Client `gorm:"foreignKey:ClientID"`
	Name        string `gorm:"not null"`
	Description string
	Status      ProjectStatus `gorm:"type:varchar(20);not null"`
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Earnings []Earning `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Expenses []Expense `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// NewProject constructs a validated project in planned state.
func NewProject(clientID, name, description string) (*Project, error) {
	p := &Project{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Status:      StatusPlanned,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) Validate() error {
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.Required("client_id", p.ClientID, v)
	switch p.Status {
	case StatusPlanned, StatusActive, StatusCompleted, StatusCancelled:
	default:
		v["status"] = "unknown_status"
	}
	// Completed implies the end date is set.
	if p.Status == StatusCompleted && p.EndDate == nil {
		v["end_date"] = "required_when_completed"
	}
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
