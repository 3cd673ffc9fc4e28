package handlers

import (
	"errors"
	"net/http"

	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/models"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
		return
	}
	var nferr *models.NotFoundError
	if errors.As(err, &nferr) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nferr.Error())
		return
	}
	var perr *models.PreconditionError
	if errors.As(err, &perr) {
		httpx.JSONError(w, http.StatusConflict, "precondition_failed", perr.Error())
		return
	}
	var cerr *models.StateConflictError
	if errors.As(err, &cerr) {
		httpx.JSONError(w, http.StatusConflict, "state_conflict", cerr.Error())
		return
	}
	var serr *models.SettlementError
	if errors.As(err, &serr) {
		httpx.JSONError(w, http.StatusInternalServerError, "settlement_failed", serr.Error())
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}
