package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/digiwolf/leads/internal/infra/http/middleware"
	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/usecase"
)

type LeadSubmitter interface {
	SubmitCompleted(ctx context.Context, input usecase.SubmitLeadInput) (*usecase.SubmitLeadOutput, error)
	SubmitAbandoned(ctx context.Context, input usecase.AbandonedLeadInput) (*usecase.SubmitLeadOutput, error)
}

// LeadHandler atende o formulário público do site.
type LeadHandler struct {
	UC LeadSubmitter
}

func NewLeadHandler(uc LeadSubmitter) *LeadHandler {
	return &LeadHandler{UC: uc}
}

type SubmitLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	input.ClientIP = middleware.ClientIP(r)
	input.RequestUserAgent = r.UserAgent()
	if strings.TrimSpace(input.UserAgent) == "" {
		input.UserAgent = input.RequestUserAgent
	}
	if strings.TrimSpace(input.PhoneModel) == "" {
		input.PhoneModel = PhoneModel(input.UserAgent)
	}
	if input.EventSourceURL == "" {
		input.EventSourceURL = r.Referer()
	}

	out, err := h.UC.SubmitCompleted(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitLeadResponse{
		Success: true,
		ID:      out.ID,
		Message: out.Message,
	})
}

// SubmitAbandoned sempre responde 200: o front chama isso em unload e não trata erro.
func (h *LeadHandler) SubmitAbandoned(w http.ResponseWriter, r *http.Request) {
	var input usecase.AbandonedLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeJSON(w, http.StatusOK, SubmitLeadResponse{Success: false, Error: "Invalid JSON"})
		return
	}

	if strings.TrimSpace(input.UserAgent) == "" {
		input.UserAgent = r.UserAgent()
	}
	if strings.TrimSpace(input.PhoneModel) == "" {
		input.PhoneModel = PhoneModel(input.UserAgent)
	}

	out, err := h.UC.SubmitAbandoned(r.Context(), input)
	if err != nil {
		logger.Log.Debug().Err(err).Msg("abandono não registrado")
		writeJSON(w, http.StatusOK, SubmitLeadResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, SubmitLeadResponse{
		Success: true,
		ID:      out.ID,
		Message: out.Message,
	})
}
