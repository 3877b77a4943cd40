package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/olanest/olanest/internal/identity"
	"github.com/olanest/olanest/internal/license"
	"github.com/olanest/olanest/pkg/models"
)

type LicensesHandler struct {
	workflow *license.Workflow
	resolver *identity.Resolver
}

func NewLicensesHandler(workflow *license.Workflow, resolver *identity.Resolver) *LicensesHandler {
	return &LicensesHandler{workflow: workflow, resolver: resolver}
}

type submitLicenseRequest struct {
	LicenseNumber      string `json:"license_number"`
	LicenseDocumentURL string `json:"license_document_url,omitempty"`
}

func (h *LicensesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	var req submitLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	app, err := h.workflow.Submit(r.Context(), caller, req.LicenseNumber, req.LicenseDocumentURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, app, http.StatusCreated)
}

// List serves the admin review screen; ?status= narrows to one status.
func (h *LicensesHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	status := models.ApplicationStatus(r.URL.Query().Get("status"))
	apps, err := h.workflow.List(r.Context(), caller, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"items": apps}, http.StatusOK)
}

func (h *LicensesHandler) Approve(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.workflow.Approve(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"status": string(models.StatusApproved)}, http.StatusOK)
}

type rejectLicenseRequest struct {
	Notes string `json:"notes,omitempty"`
}

func (h *LicensesHandler) Reject(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	var req rejectLicenseRequest
	if r.Body != nil {
		// an empty body means "reject with default notes"
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	id := mux.Vars(r)["id"]
	if err := h.workflow.Reject(r.Context(), caller, id, req.Notes); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"status": string(models.StatusRejected)}, http.StatusOK)
}
