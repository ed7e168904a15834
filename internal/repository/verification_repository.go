package repository

import (
	"context"
	"errors"
	"time"

	"iri-backend/internal/database"
	"iri-backend/internal/domain/verification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrVerificationNotFound = errors.New("verification request not found")

type VerificationRepository interface {
	Create(ctx context.Context, req verification.Request) (verification.Request, error)
	GetByID(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (verification.Request, error)

	// FindByProfile returns every request of the profile, oldest first.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]verification.Request, error)

	// ListByProfile returns requests newest first; limit <= 0 means all.
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]verification.Request, error)

	// TransitionStatus moves a request out of pending with a single
	// compare-and-set statement. Returns false when the request was
	// already settled (or expired) by a concurrent writer.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to verification.Status, score float64, completedAt *time.Time) (bool, error)
}

type PostgresVerificationRepository struct {
	db database.DB
}

func NewPostgresVerificationRepository(db database.DB) *PostgresVerificationRepository {
	return &PostgresVerificationRepository{db: db}
}

const selectVerification = `SELECT id, profile_id, target_type, target_id, method, status, score, referral_name, referral_email, evidence_url, token, expires_at, completed_at, created_at
	FROM verification_requests`

func (r *PostgresVerificationRepository) Create(ctx context.Context, req verification.Request) (verification.Request, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO verification_requests
			(profile_id, target_type, target_id, method, status, score, referral_name, referral_email, evidence_url, token, expires_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		req.ProfileID, req.Target.Type, req.Target.ID, req.Method, req.Status, req.Score,
		req.ReferralName, req.ReferralEmail, req.EvidenceURL, req.Token, req.ExpiresAt, req.CompletedAt,
	)
	if err := row.Scan(&req.ID, &req.CreatedAt); err != nil {
		return verification.Request{}, err
	}
	return req, nil
}

func (r *PostgresVerificationRepository) GetByID(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (verification.Request, error) {
	var req verification.Request
	row := r.db.QueryRow(ctx, selectVerification+` WHERE profile_id = $1 AND id = $2`, profileID, id)
	if err := scanVerification(row, &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.Request{}, ErrVerificationNotFound
		}
		return verification.Request{}, err
	}
	return req, nil
}

func (r *PostgresVerificationRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]verification.Request, error) {
	return r.listByProfile(ctx, profileID, "ASC", 0)
}

func (r *PostgresVerificationRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]verification.Request, error) {
	return r.listByProfile(ctx, profileID, "DESC", limit)
}

func (r *PostgresVerificationRepository) listByProfile(ctx context.Context, profileID uuid.UUID, order string, limit int) ([]verification.Request, error) {
	query := selectVerification + ` WHERE profile_id = $1 ORDER BY created_at ` + order
	args := []any{profileID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]verification.Request, 0)
	for rows.Next() {
		var req verification.Request
		if err := scanVerification(rows, &req); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresVerificationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to verification.Status, score float64, completedAt *time.Time) (bool, error) {
	if !verification.CanTransition(from, to) {
		return false, nil
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE verification_requests
		 SET status = $1, score = $2, completed_at = $3
		 WHERE id = $4 AND status = $5`,
		to, score, completedAt, id, from,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanVerification(row database.Row, req *verification.Request) error {
	return row.Scan(
		&req.ID, &req.ProfileID, &req.Target.Type, &req.Target.ID, &req.Method, &req.Status, &req.Score,
		&req.ReferralName, &req.ReferralEmail, &req.EvidenceURL, &req.Token, &req.ExpiresAt, &req.CompletedAt, &req.CreatedAt,
	)
}
