package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/logger"
)

// ChangeStatus é a ação do dashboard. Qualquer status pode ir para qualquer outro;
// IsAbandoned e AbandonedAt acompanham.
func (uc *LeadUseCase) ChangeStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	status = entity.LeadStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return &DomainError{
			Code:    CodeValidation,
			Message: "Invalid status",
			Fields:  []ValidationError{{"status", "must be one of NEW, CONTACTED, QUALIFIED, CONVERTED, ABANDONED"}},
		}
	}

	now := uc.now()
	var abandonedAt *time.Time
	if status == entity.LeadStatusAbandoned {
		abandonedAt = &now
	}

	if err := uc.Repo.UpdateStatus(ctx, id, status, abandonedAt, now); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return notFoundError()
		}
		logger.Log.Error().Err(err).Str("lead_id", id).Msg("erro ao atualizar status do lead")
		return &TechnicalError{Code: CodeDatabase, Message: "Failed to update lead status", Err: err}
	}

	logger.Log.Info().Str("lead_id", id).Str("status", string(status)).Msg("status do lead atualizado")
	return nil
}

// MarkAbandoned mexe só na flag, o status fica como está.
func (uc *LeadUseCase) MarkAbandoned(ctx context.Context, id string) error {
	now := uc.now()
	return uc.setAbandonedFlag(ctx, id, true, &now, "Failed to mark lead as abandoned")
}

func (uc *LeadUseCase) UnmarkAbandoned(ctx context.Context, id string) error {
	return uc.setAbandonedFlag(ctx, id, false, nil, "Failed to unmark lead as abandoned")
}

func (uc *LeadUseCase) setAbandonedFlag(ctx context.Context, id string, abandoned bool, at *time.Time, failMsg string) error {
	if err := uc.Repo.SetAbandonedFlag(ctx, id, abandoned, at, uc.now()); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return notFoundError()
		}
		logger.Log.Error().Err(err).Str("lead_id", id).Bool("abandoned", abandoned).Msg("erro ao alterar flag de abandono")
		return &TechnicalError{Code: CodeDatabase, Message: failMsg, Err: err}
	}
	return nil
}

func (uc *LeadUseCase) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFoundError()
		}
		logger.Log.Error().Err(err).Str("lead_id", id).Msg("erro ao buscar lead")
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to fetch lead", Err: err}
	}
	return lead, nil
}

// ListLeads devolve tudo que bate com o filtro, mais recentes primeiro. Sem paginação.
func (uc *LeadUseCase) ListLeads(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	leads, err := uc.Repo.List(ctx, filter)
	if err != nil {
		logger.Log.Error().Err(err).Msg("erro ao listar leads")
		return []*entity.Lead{}, &TechnicalError{Code: CodeDatabase, Message: "Failed to fetch leads", Err: err}
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

func (uc *LeadUseCase) BulkDelete(ctx context.Context, ids []string) (int, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return 0, &DomainError{Code: CodeEmptyRequest, Message: "No leads selected for deletion"}
	}

	deleted, err := uc.Repo.DeleteMany(ctx, cleaned)
	if err != nil {
		logger.Log.Error().Err(err).Int("requested", len(cleaned)).Msg("erro ao excluir leads")
		return 0, &TechnicalError{Code: CodeDatabase, Message: "Failed to delete leads", Err: err}
	}

	logger.Log.Info().Int("requested", len(cleaned)).Int("deleted", deleted).Msg("leads excluídos")
	return deleted, nil
}
