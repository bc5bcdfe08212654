package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/infra/metrics"
)

const abandonedFailureMessage = "Failed to create abandoned lead"

// SubmitAbandoned grava silenciosamente um formulário largado no meio. Chamado várias
// vezes pelo front (debounce, aba oculta, unload, fechar o modal), então é idempotente
// dentro da RecencyWindow.
func (uc *LeadUseCase) SubmitAbandoned(ctx context.Context, input AbandonedLeadInput) (*SubmitLeadOutput, error) {
	if errs := ValidateAbandonedLeadInput(input); len(errs) > 0 {
		metrics.RecordLeadSubmission(metrics.KindAbandoned, metrics.OutcomeInvalid)
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "Phone number is required for abandoned leads",
			Fields:  errs,
		}
	}

	phone := strings.TrimSpace(input.Phone)
	now := uc.now()

	existing, err := uc.Repo.FindLatestByPhone(ctx, phone)
	if err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
		return nil, uc.abandonedFailure(err)
	}

	if existing != nil && existing.CreatedAt.After(now.Add(-RecencyWindow)) {
		if existing.IsAbandoned {
			metrics.RecordLeadSubmission(metrics.KindAbandoned, metrics.OutcomeNoop)
			return &SubmitLeadOutput{ID: existing.ID, Message: "Abandoned lead updated"}, nil
		}

		mergeAbandonedFields(existing, input)
		existing.SetStatus(entity.LeadStatusAbandoned, now)
		existing.UpdatedAt = now

		if err := uc.Repo.Update(ctx, existing); err != nil {
			return nil, uc.abandonedFailure(err)
		}

		logger.Log.Info().Str("lead_id", existing.ID).Msg("lead recente marcado como abandonado")
		metrics.RecordLeadSubmission(metrics.KindAbandoned, metrics.OutcomeUpdated)
		return &SubmitLeadOutput{ID: existing.ID, Message: "Abandoned lead updated"}, nil
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = entity.NotProvidedName
	}

	lead := entity.NewLead(name, phone, abandonedCategory(input.Category), now)
	lead.Email = optional(input.Email)
	lead.BusinessDescription = optional(input.BusinessDescription)
	lead.Browser = optional(input.Browser)
	lead.UserAgent = optional(input.UserAgent)
	lead.PhoneModel = optional(input.PhoneModel)
	lead.SetStatus(entity.LeadStatusAbandoned, now)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, uc.abandonedFailure(err)
	}

	logger.Log.Info().Str("lead_id", lead.ID).Msg("lead abandonado criado")
	metrics.RecordLeadSubmission(metrics.KindAbandoned, metrics.OutcomeCreated)
	return &SubmitLeadOutput{
		ID:      lead.ID,
		Message: "Abandoned lead created successfully",
		Created: true,
	}, nil
}

// mergeAbandonedFields só sobrescreve com valores não vazios. Browser e userAgent
// ficam como estavam.
func mergeAbandonedFields(lead *entity.Lead, input AbandonedLeadInput) {
	if v := strings.TrimSpace(input.Name); v != "" {
		lead.Name = v
	}
	if v := strings.TrimSpace(input.Phone); v != "" {
		lead.Phone = v
	}
	if v := optional(input.Email); v != nil {
		lead.Email = v
	}
	if c := entity.BusinessCategory(strings.TrimSpace(input.Category)); c.Valid() {
		lead.Category = c
	}
	if v := optional(input.BusinessDescription); v != nil {
		lead.BusinessDescription = v
	}
	if v := optional(input.PhoneModel); v != nil {
		lead.PhoneModel = v
	}
}

func abandonedCategory(raw string) entity.BusinessCategory {
	c := entity.BusinessCategory(strings.TrimSpace(raw))
	if !c.Valid() {
		return entity.CategoryOther
	}
	return c
}

func (uc *LeadUseCase) abandonedFailure(err error) *TechnicalError {
	logger.Log.Error().Err(err).Msg("erro ao salvar lead abandonado")
	metrics.RecordLeadSubmission(metrics.KindAbandoned, metrics.OutcomeFailed)
	return &TechnicalError{
		Code:    CodeDatabase,
		Message: abandonedFailureMessage,
		Err:     err,
	}
}
