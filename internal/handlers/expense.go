package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
)

type ExpenseHandler struct {
	Stores *repo.Stores
}

func NewExpenseHandler(stores *repo.Stores) *ExpenseHandler { return &ExpenseHandler{Stores: stores} }

type expenseReq struct {
	ProjectID   string          `json:"project_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
	Category    string          `json:"category"`
}

// List: GET /expenses?project_id=
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Stores.Expenses.ListByProject(r.URL.Query().Get("project_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]any{"items": expenses, "total": len(expenses)})
}

// Create: POST /expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req expenseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if _, err := h.Stores.Projects.GetByUUID(req.ProjectID); err != nil {
		writeDomainError(w, err)
		return
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	expense, err := models.NewExpense(req.ProjectID, req.Description, req.Amount, date, models.ExpenseCategory(req.Category))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Stores.Expenses.Add(expense); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.Created(w, expense)
}

// Accept: POST /expenses/accept?id= – approval workflow, independent of billing.
func (h *ExpenseHandler) Accept(w http.ResponseWriter, r *http.Request) {
	expense, err := h.Stores.Expenses.GetByUUID(r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	expense.Accept()
	if err := h.Stores.Expenses.Update(expense); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, expense)
}

// Delete: POST /expenses/delete?id=
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Stores.Expenses.Delete(r.URL.Query().Get("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]string{"status": "deleted"})
}
