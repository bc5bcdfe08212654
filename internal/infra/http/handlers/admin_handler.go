package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/usecase"
)

type LeadManager interface {
	ListLeads(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error)
	GetLead(ctx context.Context, id string) (*entity.Lead, error)
	Stats(ctx context.Context) (*usecase.LeadStats, error)
	ChangeStatus(ctx context.Context, id string, status entity.LeadStatus) error
	MarkAbandoned(ctx context.Context, id string) error
	UnmarkAbandoned(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

type AdminLeadHandler struct {
	UC LeadManager
}

func NewAdminLeadHandler(uc LeadManager) *AdminLeadHandler {
	return &AdminLeadHandler{UC: uc}
}

type okResponse struct {
	Success bool `json:"success"`
}

type listLeadsResponse struct {
	Success bool           `json:"success"`
	Leads   []*entity.Lead `json:"leads"`
}

type leadResponse struct {
	Success bool         `json:"success"`
	Lead    *entity.Lead `json:"lead"`
}

type statsResponse struct {
	Success bool               `json:"success"`
	Stats   *usecase.LeadStats `json:"stats"`
}

type bulkDeleteResponse struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deletedCount"`
}

// List aceita ?category=&status=&abandoned=true|false&search=
func (h *AdminLeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := entity.LeadFilter{
		Category: entity.BusinessCategory(strings.TrimSpace(q.Get("category"))),
		Status:   entity.LeadStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
		Search:   q.Get("search"),
	}
	if raw := q.Get("abandoned"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "abandoned must be true or false")
			return
		}
		filter.IsAbandoned = &v
	}

	leads, err := h.UC.ListLeads(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listLeadsResponse{Success: true, Leads: leads})
}

func (h *AdminLeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.UC.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leadResponse{Success: true, Lead: lead})
}

func (h *AdminLeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.UC.Stats(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
}

func (h *AdminLeadHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	if err := h.UC.ChangeStatus(r.Context(), chi.URLParam(r, "id"), entity.LeadStatus(body.Status)); err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *AdminLeadHandler) MarkAbandoned(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.MarkAbandoned(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *AdminLeadHandler) UnmarkAbandoned(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.UnmarkAbandoned(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *AdminLeadHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	n, err := h.UC.BulkDelete(r.Context(), body.IDs)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bulkDeleteResponse{Success: true, DeletedCount: n})
}
