package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/usecase"
)

type ErrorResponse struct {
	Success bool                      `json:"success"`
	Code    string                    `json:"code,omitempty"`
	Error   string                    `json:"error"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error().Err(err).Msg("erro ao escrever resposta")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Code: code, Error: message})
}

// writeUseCaseError traduz os erros do caso de uso para status HTTP.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if de.Code == usecase.CodeNotFound {
			status = http.StatusNotFound
		}
		if de.Code == usecase.ErrInvalidCredentials.Code {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, ErrorResponse{Success: false, Code: de.Code, Error: de.Message, Fields: de.Fields})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}

	logger.Log.Error().Err(err).Msg("erro inesperado")
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}
