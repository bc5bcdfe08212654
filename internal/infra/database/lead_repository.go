package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/digiwolf/leads/internal/entity"
)

const leadColumns = `id, name, phone, email, category, business_description, browser, user_agent,
	phone_model, status, is_abandoned, abandoned_at, created_at, updated_at`

type LeadRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewLeadRepository(db *sql.DB, dialect Dialect) *LeadRepository {
	return &LeadRepository{DB: db, Dialect: dialect}
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := r.Dialect.Rebind(`
		INSERT INTO leads (` + leadColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Phone,
		nullString(l.Email),
		string(l.Category),
		nullString(l.BusinessDescription),
		nullString(l.Browser),
		nullString(l.UserAgent),
		nullString(l.PhoneModel),
		string(l.Status),
		l.IsAbandoned,
		nullTime(l.AbandonedAt),
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar lead: %w", err)
	}
	return nil
}

// Update sobrescreve todos os campos mutáveis. id e created_at não mudam.
func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := r.Dialect.Rebind(`
		UPDATE leads SET
			name = ?, phone = ?, email = ?, category = ?, business_description = ?,
			browser = ?, user_agent = ?, phone_model = ?, status = ?, is_abandoned = ?,
			abandoned_at = ?, updated_at = ?
		WHERE id = ?
	`)

	res, err := r.DB.ExecContext(ctx, query,
		l.Name,
		l.Phone,
		nullString(l.Email),
		string(l.Category),
		nullString(l.BusinessDescription),
		nullString(l.Browser),
		nullString(l.UserAgent),
		nullString(l.PhoneModel),
		string(l.Status),
		l.IsAbandoned,
		nullTime(l.AbandonedAt),
		l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar lead: %w", err)
	}
	return expectRow(res)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := r.Dialect.Rebind(`SELECT ` + leadColumns + ` FROM leads WHERE id = ?`)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) FindLatestAbandonedByContact(ctx context.Context, phone, email string) (*entity.Lead, error) {
	where := `phone = ?`
	args := []any{true, phone}
	if email != "" {
		where = `(phone = ? OR email = ?)`
		args = append(args, email)
	}

	query := r.Dialect.Rebind(`
		SELECT ` + leadColumns + ` FROM leads
		WHERE is_abandoned = ? AND ` + where + `
		ORDER BY created_at DESC
		LIMIT 1
	`)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *LeadRepository) FindLatestByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	query := r.Dialect.Rebind(`
		SELECT ` + leadColumns + ` FROM leads
		WHERE phone = ?
		ORDER BY created_at DESC
		LIMIT 1
	`)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, phone))
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus, abandonedAt *time.Time, updatedAt time.Time) error {
	query := r.Dialect.Rebind(`
		UPDATE leads SET status = ?, is_abandoned = ?, abandoned_at = ?, updated_at = ?
		WHERE id = ?
	`)
	res, err := r.DB.ExecContext(ctx, query,
		string(status),
		status == entity.LeadStatusAbandoned,
		nullTime(abandonedAt),
		updatedAt,
		id,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status: %w", err)
	}
	return expectRow(res)
}

func (r *LeadRepository) SetAbandonedFlag(ctx context.Context, id string, abandoned bool, abandonedAt *time.Time, updatedAt time.Time) error {
	query := r.Dialect.Rebind(`
		UPDATE leads SET is_abandoned = ?, abandoned_at = ?, updated_at = ?
		WHERE id = ?
	`)
	res, err := r.DB.ExecContext(ctx, query, abandoned, nullTime(abandonedAt), updatedAt, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar flag de abandono: %w", err)
	}
	return expectRow(res)
}

func (r *LeadRepository) List(ctx context.Context, f entity.LeadFilter) ([]*entity.Lead, error) {
	var (
		conds []string
		args  []any
	)

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(f.Category))
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.IsAbandoned != nil {
		conds = append(conds, "is_abandoned = ?")
		args = append(args, *f.IsAbandoned)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		conds = append(conds, `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(email, '')) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Count(ctx context.Context, abandonedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM leads`
	var args []any
	if abandonedOnly {
		query += ` WHERE is_abandoned = ?`
		args = append(args, true)
	}
	var n int
	if err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("erro ao contar leads: %w", err)
	}
	return n, nil
}

func (r *LeadRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	query := r.Dialect.Rebind(`SELECT COUNT(*) FROM leads WHERE created_at >= ?`)
	var n int
	if err := r.DB.QueryRowContext(ctx, query, since.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("erro ao contar leads por período: %w", err)
	}
	return n, nil
}

func (r *LeadRepository) CountByCategory(ctx context.Context) ([]entity.CategoryCount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM leads
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar por categoria: %w", err)
	}
	defer rows.Close()

	out := []entity.CategoryCount{}
	for rows.Next() {
		var c entity.CategoryCount
		var category string
		if err := rows.Scan(&category, &c.Count); err != nil {
			return nil, err
		}
		c.Category = entity.BusinessCategory(category)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByBrowser ignora browser NULL; string vazia volta vazia e vira "Unknown" no caso de uso.
func (r *LeadRepository) CountByBrowser(ctx context.Context) ([]entity.BrowserCount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT browser, COUNT(*) FROM leads
		WHERE browser IS NOT NULL
		GROUP BY browser
		ORDER BY COUNT(*) DESC, browser ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar por browser: %w", err)
	}
	defer rows.Close()

	out := []entity.BrowserCount{}
	for rows.Next() {
		var b entity.BrowserCount
		if err := rows.Scan(&b.Browser, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *LeadRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var (
		res sql.Result
		err error
	)
	if r.Dialect == Postgres {
		res, err = r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = ANY($1)`, pq.Array(ids))
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}
		res, err = r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id IN (`+placeholders+`)`, args...)
	}
	if err != nil {
		return 0, fmt.Errorf("erro ao excluir leads: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *LeadRepository) scanOne(row *sql.Row) (*entity.Lead, error) {
	l, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lead: %w", err)
	}
	return l, nil
}

func scanLead(s rowScanner) (*entity.Lead, error) {
	var (
		l                                            entity.Lead
		email, description, browser, ua, phoneModel sql.NullString
		category, status                            string
		abandonedAt                                 sql.NullTime
	)

	err := s.Scan(
		&l.ID,
		&l.Name,
		&l.Phone,
		&email,
		&category,
		&description,
		&browser,
		&ua,
		&phoneModel,
		&status,
		&l.IsAbandoned,
		&abandonedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Category = entity.BusinessCategory(category)
	l.Status = entity.LeadStatus(status)
	l.Email = fromNullString(email)
	l.BusinessDescription = fromNullString(description)
	l.Browser = fromNullString(browser)
	l.UserAgent = fromNullString(ua)
	l.PhoneModel = fromNullString(phoneModel)
	if abandonedAt.Valid {
		t := abandonedAt.Time
		l.AbandonedAt = &t
	}
	return &l, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
