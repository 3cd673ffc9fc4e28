// Package billing implements the settlement engine: it selects a
// project's unpaid earnings, computes totals through the tax policy,
// marks the earnings settled inside one transaction and produces an
// immutable invoice snapshot for rendering.
package billing

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
	"github.com/fakturabok/billing/internal/tax"
)

type Engine struct {
	stores          *repo.Stores
	policy          tax.Policy
	paymentTermDays int
	locks           *projectLocks
}

func NewEngine(db *gorm.DB, policy tax.Policy, paymentTermDays int) *Engine {
	if paymentTermDays <= 0 {
		paymentTermDays = 14
	}
	return &Engine{
		stores:          repo.New(db),
		policy:          policy,
		paymentTermDays: paymentTermDays,
		locks:           newProjectLocks(),
	}
}

// GenerateInvoice bills every unsettled earning of the project.
//
// A project with no unsettled earnings still yields a valid zero-total
// snapshot; callers that want to refuse empty invoices can check the
// line count. Re-invocation only picks up earnings added since the last
// run, which is what prevents double billing.
//
// The settlement transition and the project write run in a single
// transaction: on failure nothing is persisted and the returned
// SettlementError says so.
func (e *Engine) GenerateInvoice(projectID string) (*InvoiceSnapshot, error) {
	unlock := e.locks.lock(projectID)
	defer unlock()

	project, err := e.stores.Projects.GetByUUID(projectID)
	if err != nil {
		return nil, err
	}
	profile, err := e.stores.Company.Get()
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &models.PreconditionError{Msg: "missing company profile"}
	}

	unsettled, err := e.stores.Earnings.ListUnsettledByProject(projectID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	lines := make([]InvoiceLine, 0, len(unsettled))
	for _, earning := range unsettled {
		subtotal = subtotal.Add(earning.Amount)
		lines = append(lines, InvoiceLine{
			EarningID:   earning.ID,
			Description: earning.Description,
			Quantity:    1,
			Amount:      earning.Amount,
		})
	}

	isBusiness := project.Client.IsBusiness()
	taxAmount, total := e.policy.ComputeTotals(subtotal, isBusiness)

	now := time.Now()
	snapshot := &InvoiceSnapshot{
		Number:      InvoiceNumber(project.ID),
		ProjectID:   project.ID,
		ProjectName: project.Name,
		IssueDate:   now,
		DueDate:     now.AddDate(0, 0, e.paymentTermDays),
		Lines:       lines,
		Subtotal:    subtotal,
		TaxRate:     e.policy.Rate,
		TaxAmount:   taxAmount,
		Total:       total,
		IsBusiness:  isBusiness,
		Issuer:      issuerFromProfile(profile),
		BilledTo:    billedToFromClient(&project.Client),
		GeneratedAt: now,
	}

	err = e.stores.Tx(func(tx *repo.Stores) error {
		for i := range unsettled {
			if serr := unsettled[i].Settle(now); serr != nil {
				return serr
			}
			if uerr := tx.Earnings.Update(&unsettled[i]); uerr != nil {
				return uerr
			}
		}
		return tx.Projects.Update(project)
	})
	if err != nil {
		// The transaction rolled back as a whole; no earning was
		// durably settled.
		return nil, &models.SettlementError{Partial: false, Err: err}
	}

	log.Info().
		Str("project_id", project.ID).
		Str("invoice", snapshot.Number).
		Int("lines", len(lines)).
		Str("total", total.StringFixed(2)).
		Bool("business", isBusiness).
		Msg("invoice generated")
	return snapshot, nil
}
