package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fakturabok/billing/internal/httpx"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/repo"
)

type ClientHandler struct {
	Stores *repo.Stores
}

func NewClientHandler(stores *repo.Stores) *ClientHandler { return &ClientHandler{Stores: stores} }

type clientReq struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Country       string `json:"country"`
	CVR           string `json:"cvr"`
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, _ *http.Request) {
	clients, err := h.Stores.Clients.GetAll()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]any{"items": clients, "total": len(clients)})
}

// Get: GET /clients/get?id=
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.Stores.Clients.GetByUUID(r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, client)
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	client, err := models.NewClient(req.CompanyName, req.ContactPerson, req.Email, req.Phone)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	client.Street = req.Street
	client.PostalCode = req.PostalCode
	client.City = req.City
	client.Country = req.Country
	client.CVR = req.CVR
	if err := h.Stores.Clients.Add(client); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.Created(w, client)
}

// Update: POST /clients/update?id=
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	client, err := h.Stores.Clients.GetByUUID(r.URL.Query().Get("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req clientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	client.CompanyName = req.CompanyName
	client.ContactPerson = req.ContactPerson
	client.Email = req.Email
	client.Phone = req.Phone
	client.Street = req.Street
	client.PostalCode = req.PostalCode
	client.City = req.City
	client.Country = req.Country
	client.CVR = req.CVR
	if err := h.Stores.Clients.Update(client); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, client)
}

// Delete: POST /clients/delete?id= – refused while the client owns projects.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Stores.Clients.Delete(r.URL.Query().Get("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.OK(w, map[string]string{"status": "deleted"})
}
