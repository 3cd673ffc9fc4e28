package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
)

// SetupHandler manages the issuing company profile. Without it no
// invoice can be generated.
type SetupHandler struct {
	Stores *repo.Stores
}

func NewSetupHandler(stores *repo.Stores) *SetupHandler { return &SetupHandler{Stores: stores} }

// Handle: GET returns the profile (404 when unset), PUT/POST saves it.
func (h *SetupHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := h.Stores.Company.Get()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if profile == nil {
			httpx.JSONError(w, http.StatusNotFound, "company_not_configured", nil)
			return
		}
		httpx.OK(w, profile)
	case http.MethodPost, http.MethodPut:
		var profile models.CompanyProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		if err := h.Stores.Company.Save(&profile); err != nil {
			writeDomainError(w, err)
			return
		}
		httpx.OK(w, profile)
	default:
		w.Header().Set("Allow", "GET,POST,PUT")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}
