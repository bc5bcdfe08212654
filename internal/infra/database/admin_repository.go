package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digiwolf/leads/internal/entity"
)

type AdminRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewAdminRepository(db *sql.DB, dialect Dialect) *AdminRepository {
	return &AdminRepository{DB: db, Dialect: dialect}
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("erro ao contar admins: %w", err)
	}
	return n, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	query := r.Dialect.Rebind(`
		SELECT id, email, name, password_hash, email_verified, created_at, updated_at
		FROM admin_users WHERE email = ?
	`)

	var u entity.AdminUser
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAdminNotFound
		}
		return nil, fmt.Errorf("erro ao buscar admin: %w", err)
	}
	return &u, nil
}

// Replace roda delete + insert na mesma transação.
func (r *AdminRepository) Replace(ctx context.Context, u *entity.AdminUser) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM admin_users WHERE email = ?`), u.Email); err != nil {
		return fmt.Errorf("erro ao remover admin antigo: %w", err)
	}

	insert := r.Dialect.Rebind(`
		INSERT INTO admin_users (id, email, name, password_hash, email_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = tx.ExecContext(ctx, insert,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.EmailVerified,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("erro ao gravar admin: %w", err)
	}

	return tx.Commit()
}
