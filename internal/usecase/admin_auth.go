package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/digiwolf/leads/internal/entity"
	"github.com/digiwolf/leads/internal/infra/logger"
)

var ErrInvalidCredentials = &DomainError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}

type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type AdminUseCase struct {
	Repo   entity.AdminRepositoryInterface
	Tokens TokenIssuer
}

func NewAdminUseCase(repo entity.AdminRepositoryInterface, tokens TokenIssuer) *AdminUseCase {
	return &AdminUseCase{Repo: repo, Tokens: tokens}
}

func (uc *AdminUseCase) HasAdmin(ctx context.Context) (bool, error) {
	n, err := uc.Repo.Count(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("erro ao verificar admin")
		return false, &TechnicalError{Code: CodeDatabase, Message: "Unable to verify admin status", Err: err}
	}
	return n > 0, nil
}

func (uc *AdminUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", &TechnicalError{Code: CodeDatabase, Message: "Unable to sign in", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := uc.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", &TechnicalError{Code: "TOKEN_ERROR", Message: "Unable to sign in", Err: err}
	}
	return token, nil
}

// ProvisionAdmin substitui qualquer admin com o mesmo email. Usado pelo cmd/create-admin.
func (uc *AdminUseCase) ProvisionAdmin(ctx context.Context, email, name, password string) (*entity.AdminUser, error) {
	if len(password) < 6 {
		return nil, &DomainError{Code: CodeValidation, Message: "password must have at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: "failed to hash password", Err: err}
	}

	user, err := entity.NewAdminUser(email, name, string(hash))
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	user.EmailVerified = true

	if err := uc.Repo.Replace(ctx, user); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to save admin user", Err: err}
	}
	return user, nil
}
