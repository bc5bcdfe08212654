package usecase

import (
	"context"
	"time"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/integration/facebook"
)

// ConversionNotifier recebe leads concluídos. Implementado pelo client do Facebook
// e pelo producer do RabbitMQ.
type ConversionNotifier interface {
	SendLeadEvent(ctx context.Context, input facebook.LeadEventInput) error
}

// LeadMailer avisa a equipe comercial sobre um lead novo.
type LeadMailer interface {
	SendNewLead(lead *entity.Lead) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
