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

type EarningHandler struct {
	Stores *repo.Stores
}

func NewEarningHandler(stores *repo.Stores) *EarningHandler { return &EarningHandler{Stores: stores} }

type earningReq struct {
	ProjectID   string          `json:"project_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
}

// List: GET /earnings?project_id=
func (h *EarningHandler) List(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.Stores.Earnings.ListByProject(r.URL.Query().Get("project_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]any{"items": earnings, "total": len(earnings)})
}

// Create: POST /earnings
func (h *EarningHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req earningReq
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
	earning, err := models.NewEarning(req.ProjectID, req.Description, req.Amount, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Stores.Earnings.Add(earning); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.Created(w, earning)
}

// Update: POST /earnings/update?id= – settled earnings are frozen.
func (h *EarningHandler) Update(w http.ResponseWriter, r *http.Request) {
	earning, err := h.Stores.Earnings.GetByUUID(r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req earningReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := earning.UpdateDetails(req.Description, req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Date != nil {
		earning.Date = *req.Date
	}
	if err := h.Stores.Earnings.Update(earning); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, earning)
}

// Delete: POST /earnings/delete?id= – refused for settled earnings.
func (h *EarningHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Stores.Earnings.Delete(r.URL.Query().Get("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]string{"status": "deleted"})
}
