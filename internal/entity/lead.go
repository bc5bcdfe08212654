package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// NotProvidedName é o placeholder gravado quando um lead abandonado chega sem nome.
const NotProvidedName = "Not provided"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusAbandoned LeadStatus = "ABANDONED"
)

var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusConverted,
	LeadStatusAbandoned,
}

func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Lead struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Phone               string           `json:"phone"`
	Email               *string          `json:"email"`
	Category            BusinessCategory `json:"category"`
	BusinessDescription *string          `json:"businessDescription"`
	Browser             *string          `json:"browser"`
	UserAgent           *string          `json:"userAgent"`
	PhoneModel          *string          `json:"phoneModel"`
	Status              LeadStatus       `json:"status"`
	IsAbandoned         bool             `json:"isAbandoned"`
	AbandonedAt         *time.Time       `json:"abandonedAt"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// NewLead monta um lead NEW, ainda não persistido.
func NewLead(name, phone string, category BusinessCategory, now time.Time) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Category:  category,
		Status:    LeadStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus mantém IsAbandoned e AbandonedAt coerentes com o status.
func (l *Lead) SetStatus(status LeadStatus, now time.Time) {
	l.Status = status
	if status == LeadStatusAbandoned {
		l.IsAbandoned = true
		l.AbandonedAt = &now
		return
	}
	l.IsAbandoned = false
	l.AbandonedAt = nil
}

// SplitName separa o nome no primeiro espaço: "Ali Ben Salah" -> ("Ali", "Ben Salah").
func (l *Lead) SplitName() (first, last string) {
	fields := strings.Fields(l.Name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

type LeadFilter struct {
	Category    BusinessCategory
	Status      LeadStatus
	IsAbandoned *bool
	Search      string
}

type CategoryCount struct {
	Category BusinessCategory `json:"category"`
	Count    int              `json:"count"`
}

type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int    `json:"count"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	// FindLatestAbandonedByContact busca o abandonado mais recente com esse telefone OU email.
	FindLatestAbandonedByContact(ctx context.Context, phone, email string) (*Lead, error)
	FindLatestByPhone(ctx context.Context, phone string) (*Lead, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus, abandonedAt *time.Time, updatedAt time.Time) error
	SetAbandonedFlag(ctx context.Context, id string, abandoned bool, abandonedAt *time.Time, updatedAt time.Time) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Count(ctx context.Context, abandonedOnly bool) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountByBrowser(ctx context.Context) ([]BrowserCount, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
}
