package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fakturabok/billing/internal/billing"
	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/pdf"
)

// InvoiceHandler exposes the settlement engine. Generate settles the
// project's unpaid earnings and returns the snapshot; PDF does the same
// and streams the rendered document.
type InvoiceHandler struct {
	Engine *billing.Engine
}

func NewInvoiceHandler(engine *billing.Engine) *InvoiceHandler {
	return &InvoiceHandler{Engine: engine}
}

// Generate: POST /invoices/generate {project_id}
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	snapshot, err := h.Engine.GenerateInvoice(req.ProjectID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.Created(w, snapshot)
}

// PDF: POST /invoices/pdf?project_id= – generates and streams the document.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	snapshot, err := h.Engine.GenerateInvoice(projectID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	doc, err := pdf.Invoice(snapshot)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snapshot.Number+".pdf"))
	if _, err := w.Write(doc); err != nil {
		_ = err
	}
}
