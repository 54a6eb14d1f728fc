package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coreshop-storefront/internal/domain"

	"github.com/google/uuid"
)

type AttemptRepo interface {
	Create(ctx context.Context, attempt *domain.PaymentAttempt) error
	MarkAuthorizing(ctx context.Context, checkoutSessionID string) error
	// Resolve closes an open attempt owned by sessionKey; it returns nil when
	// no open attempt matches.
	Resolve(ctx context.Context, sessionKey, checkoutSessionID string, successful bool, message string) (*domain.PaymentAttempt, error)
	ResolveLatestForOrder(ctx context.Context, sessionKey string, orderID int64, successful bool, message string) (*domain.PaymentAttempt, error)
	FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*domain.PaymentAttempt, error)
	FindOpenBefore(ctx context.Context, before time.Time, limit int) ([]domain.PaymentAttempt, error)
	Expire(ctx context.Context, id uuid.UUID) error
}

type attemptRepo struct {
	db *sql.DB
}

func NewAttemptRepo(db *sql.DB) AttemptRepo {
	return &attemptRepo{db: db}
}

const attemptColumns = `id, session_key, order_id, checkout_session_id, amount, status, successful, message, created_at, updated_at`

func (r *attemptRepo) Create(ctx context.Context, a *domain.PaymentAttempt) error {
	query := `INSERT INTO payment_attempts (` + attemptColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(
		ctx, query,
		a.ID, a.SessionKey, a.OrderID, a.CheckoutSessionID, a.Amount, a.Status, a.Successful, a.Message, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *attemptRepo) MarkAuthorizing(ctx context.Context, checkoutSessionID string) error {
	query := `
		UPDATE payment_attempts
		SET status = $2, updated_at = now()
		WHERE checkout_session_id = $1 AND status = $3
	`
	_, err := r.db.ExecContext(ctx, query, checkoutSessionID, domain.AttemptAuthorizing, domain.AttemptOpen)
	return err
}

func (r *attemptRepo) Resolve(ctx context.Context, sessionKey, checkoutSessionID string, successful bool, message string) (*domain.PaymentAttempt, error) {
	query := `
		UPDATE payment_attempts
		SET status = $2, successful = $3, message = $4, updated_at = now()
		WHERE checkout_session_id = $1 AND status IN ($5, $6) AND session_key = $7
		RETURNING ` + attemptColumns
	row := r.db.QueryRowContext(ctx, query,
		checkoutSessionID, resolvedStatus(successful), successful, message,
		domain.AttemptOpen, domain.AttemptAuthorizing, sessionKey,
	)
	return scanOptional(row)
}

func (r *attemptRepo) ResolveLatestForOrder(ctx context.Context, sessionKey string, orderID int64, successful bool, message string) (*domain.PaymentAttempt, error) {
	query := `
		UPDATE payment_attempts
		SET status = $2, successful = $3, message = $4, updated_at = now()
		WHERE id = (
			SELECT id FROM payment_attempts
			WHERE order_id = $1 AND status IN ($5, $6) AND session_key = $7
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING ` + attemptColumns
	row := r.db.QueryRowContext(ctx, query,
		orderID, resolvedStatus(successful), successful, message,
		domain.AttemptOpen, domain.AttemptAuthorizing, sessionKey,
	)
	return scanOptional(row)
}

func (r *attemptRepo) FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*domain.PaymentAttempt, error) {
	query := `SELECT ` + attemptColumns + ` FROM payment_attempts WHERE checkout_session_id = $1`
	return scanOptional(r.db.QueryRowContext(ctx, query, checkoutSessionID))
}

func (r *attemptRepo) FindOpenBefore(ctx context.Context, before time.Time, limit int) ([]domain.PaymentAttempt, error) {
	query := `
		SELECT ` + attemptColumns + ` FROM payment_attempts
		WHERE status = $1
		AND created_at < $2
		ORDER BY created_at
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, domain.AttemptOpen, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.PaymentAttempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

func (r *attemptRepo) Expire(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE payment_attempts
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`
	_, err := r.db.ExecContext(ctx, query, id, domain.AttemptExpired, domain.AttemptOpen)
	return err
}

func resolvedStatus(successful bool) domain.AttemptStatus {
	if successful {
		return domain.AttemptSucceeded
	}
	return domain.AttemptFailed
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner) (*domain.PaymentAttempt, error) {
	var a domain.PaymentAttempt
	err := s.Scan(
		&a.ID,
		&a.SessionKey,
		&a.OrderID,
		&a.CheckoutSessionID,
		&a.Amount,
		&a.Status,
		&a.Successful,
		&a.Message,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanOptional maps no rows to a nil attempt.
func scanOptional(row *sql.Row) (*domain.PaymentAttempt, error) {
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}
