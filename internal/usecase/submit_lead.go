package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/integration/facebook"
	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/infra/metrics"
)

// SubmitCompleted grava um lead que passou pelo formulário inteiro. Se já existe um
// abandonado com o mesmo telefone ou email, ele é promovido em vez de duplicado.
func (uc *LeadUseCase) SubmitCompleted(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	if errs := ValidateSubmitLeadInput(input); len(errs) > 0 {
		metrics.RecordLeadSubmission(metrics.KindCompleted, metrics.OutcomeInvalid)
		return nil, validationFailed(errs)
	}

	phone := strings.TrimSpace(input.Phone)
	email := strings.TrimSpace(input.Email)
	now := uc.now()

	existing, err := uc.Repo.FindLatestAbandonedByContact(ctx, phone, email)
	if err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
		return nil, uc.persistenceFailure("busca de lead abandonado", err)
	}

	var lead *entity.Lead
	upgraded := existing != nil

	if upgraded {
		lead = existing
		lead.Name = strings.TrimSpace(input.Name)
		lead.Phone = phone
		lead.Category = entity.BusinessCategory(strings.TrimSpace(input.Category))
	} else {
		lead = entity.NewLead(
			strings.TrimSpace(input.Name),
			phone,
			entity.BusinessCategory(strings.TrimSpace(input.Category)),
			now,
		)
	}

	lead.Email = optional(email)
	lead.BusinessDescription = optional(input.BusinessDescription)
	lead.Browser = optional(input.Browser)
	lead.UserAgent = optional(input.UserAgent)
	lead.PhoneModel = optional(input.PhoneModel)
	lead.SetStatus(entity.LeadStatusNew, now)
	lead.UpdatedAt = now

	if upgraded {
		err = uc.Repo.Update(ctx, lead)
	} else {
		err = uc.Repo.Create(ctx, lead)
	}
	if err != nil {
		return nil, uc.persistenceFailure("gravação do lead", err)
	}

	logger.Log.Info().
		Str("lead_id", lead.ID).
		Str("category", string(lead.Category)).
		Bool("upgraded", upgraded).
		Msg("lead concluído registrado")

	outcome := metrics.OutcomeCreated
	if upgraded {
		outcome = metrics.OutcomeUpgraded
	}
	metrics.RecordLeadSubmission(metrics.KindCompleted, outcome)

	uc.dispatchNotifications(lead, input)

	return &SubmitLeadOutput{
		ID:       lead.ID,
		Message:  "Lead created successfully",
		Upgraded: upgraded,
		Created:  !upgraded,
	}, nil
}

func (uc *LeadUseCase) persistenceFailure(op string, err error) *TechnicalError {
	logger.Log.Error().Err(err).Str("op", op).Msg("erro no banco ao registrar lead")
	metrics.RecordLeadSubmission(metrics.KindCompleted, metrics.OutcomeFailed)
	return &TechnicalError{
		Code:    CodeDatabase,
		Message: "Failed to create lead",
		Err:     err,
	}
}

// dispatchNotifications roda fora do ciclo da requisição; falhas só vão para o log.
func (uc *LeadUseCase) dispatchNotifications(lead *entity.Lead, input SubmitLeadInput) {
	if uc.Notifier == nil && uc.Mailer == nil {
		return
	}

	event := uc.buildLeadEvent(lead, input)
	snapshot := *lead

	go func() {
		if uc.Notifier != nil {
			ctx, cancel := context.WithTimeout(context.Background(), uc.NotifyTimeout)
			defer cancel()

			if err := uc.Notifier.SendLeadEvent(ctx, event); err != nil {
				logger.Log.Error().Err(err).Str("lead_id", snapshot.ID).Msg("falha ao enviar evento de conversão")
			}
		}

		if uc.Mailer != nil {
			if err := uc.Mailer.SendNewLead(&snapshot); err != nil {
				logger.Log.Error().Err(err).Str("lead_id", snapshot.ID).Msg("falha ao enviar email de novo lead")
			}
		}
	}()
}

func (uc *LeadUseCase) buildLeadEvent(lead *entity.Lead, input SubmitLeadInput) facebook.LeadEventInput {
	firstName, lastName := lead.SplitName()

	userAgent := deref(lead.UserAgent)
	if userAgent == "" {
		userAgent = input.RequestUserAgent
	}

	currency := uc.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return facebook.LeadEventInput{
		EventID:         lead.ID,
		EventTime:       uc.Clock.Now().Unix(),
		EventSourceURL:  strings.TrimSpace(input.EventSourceURL),
		Email:           deref(lead.Email),
		Phone:           lead.Phone,
		FirstName:       firstName,
		LastName:        lastName,
		ClientIPAddress: input.ClientIP,
		ClientUserAgent: userAgent,
		ContentName:     string(lead.Category),
		ContentCategory: string(lead.Category),
		Value:           0,
		Currency:        currency,
	}
}
