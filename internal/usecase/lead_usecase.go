package usecase

import (
	"strings"
	"time"

	"github.com/digiwolf/leads/internal/entity"
)

const (
	// RecencyWindow: abandonos do mesmo telefone dentro dessa janela são a mesma sessão.
	RecencyWindow = 5 * time.Minute

	defaultNotifyTimeout = 15 * time.Second
	defaultCurrency      = "USD"
)

type LeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Notifier ConversionNotifier
	Mailer   LeadMailer
	Clock    Clock
	// Location define o "hoje" das estatísticas.
	Location      *time.Location
	Currency      string
	NotifyTimeout time.Duration
}

func NewLeadUseCase(
	repo entity.LeadRepositoryInterface,
	notifier ConversionNotifier,
	mailer LeadMailer,
	clock Clock,
) *LeadUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LeadUseCase{
		Repo:          repo,
		Notifier:      notifier,
		Mailer:        mailer,
		Clock:         clock,
		Location:      time.Local,
		Currency:      defaultCurrency,
		NotifyTimeout: defaultNotifyTimeout,
	}
}

// now devolve o relógio em UTC, na precisão do Postgres; é o que vai para o banco.
func (uc *LeadUseCase) now() time.Time {
	return uc.Clock.Now().UTC().Truncate(time.Microsecond)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
