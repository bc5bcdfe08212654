package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrAdminNotFound = errors.New("admin não encontrado")

type AdminUser struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewAdminUser(email, name, passwordHash string) (*AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}
	now := time.Now().UTC()
	return &AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type AdminRepositoryInterface interface {
	Count(ctx context.Context) (int, error)
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	// Replace apaga qualquer admin com o mesmo email e grava o novo.
	Replace(ctx context.Context, user *AdminUser) error
}
