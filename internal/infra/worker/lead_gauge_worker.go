package worker

import (
	"context"
	"time"

	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/infra/metrics"
)

type LeadCounter interface {
	Count(ctx context.Context, abandonedOnly bool) (int, error)
}

// LeadGaugeWorker mantém o gauge leads_stored em dia lendo o banco periodicamente.
type LeadGaugeWorker struct {
	repo         LeadCounter
	tickInterval time.Duration
	setGauge     func(total, abandoned int)
}

func NewLeadGaugeWorker(repo LeadCounter) *LeadGaugeWorker {
	return &LeadGaugeWorker{
		repo:         repo,
		tickInterval: time.Minute,
		setGauge:     metrics.SetLeadsStored,
	}
}

func (w *LeadGaugeWorker) Start(ctx context.Context) {
	logger.Log.Info().Dur("interval", w.tickInterval).Msg("lead gauge worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("lead gauge worker encerrado")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *LeadGaugeWorker) refresh(ctx context.Context) {
	total, err := w.repo.Count(ctx, false)
	if err != nil {
		logger.Log.Error().Err(err).Msg("erro ao contar leads")
		return
	}
	abandoned, err := w.repo.Count(ctx, true)
	if err != nil {
		logger.Log.Error().Err(err).Msg("erro ao contar leads abandonados")
		return
	}
	w.setGauge(total, abandoned)
}
