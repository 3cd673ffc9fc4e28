package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
)

type ProjectHandler struct {
	Stores *repo.Stores
}

func NewProjectHandler(stores *repo.Stores) *ProjectHandler { return &ProjectHandler{Stores: stores} }

type projectReq struct {
	ClientID    string     `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// List: GET /projects[?client_id=]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	var err error
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		projects, err = h.Stores.Projects.ListByClient(clientID)
	} else {
		projects, err = h.Stores.Projects.GetAll()
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]any{"items": projects, "total": len(projects)})
}

// Get: GET /projects/get?id=
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.Stores.Projects.GetByUUID(r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, project)
}

// Create: POST /projects – the owning client must exist.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if _, err := h.Stores.Clients.GetByUUID(req.ClientID); err != nil {
		writeDomainError(w, err)
		return
	}
	project, err := models.NewProject(req.ClientID, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	project.StartDate = req.StartDate
	if err := h.Stores.Projects.Add(project); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.Created(w, project)
}

// Update: POST /projects/update?id=
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	project, err := h.Stores.Projects.GetByUUID(r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req projectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	project.Name = req.Name
	project.Description = req.Description
	if req.Status != "" {
		project.Status = models.ProjectStatus(req.Status)
	}
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	if err := h.Stores.Projects.Update(project); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, project)
}

// Delete: POST /projects/delete?id= – cascades to earnings and expenses.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Stores.Projects.Delete(r.URL.Query().Get("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]string{"status": "deleted"})
}
