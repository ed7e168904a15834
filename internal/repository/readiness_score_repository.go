package repository

import (
	"context"
	"encoding/json"
	"time"

	"iri-backend/internal/database"
	"iri-backend/internal/domain/readiness"

	"github.com/google/uuid"
)

// ReadinessScore is the persisted snapshot row for one
// (profile, job role, company level) combination.
type ReadinessScore struct {
	ID              uuid.UUID
	ProfileID       uuid.UUID
	JobRoleID       uuid.UUID
	CompanyLevel    readiness.CompanyLevel
	Score           float64
	VerifiedScore   float64
	UnverifiedScore float64
	PillarBreakdown map[string]readiness.SnapshotPillar
	UpdatedAt       time.Time
}

type ReadinessScoreRepository interface {
	Upsert(ctx context.Context, rs ReadinessScore) (ReadinessScore, error)
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]ReadinessScore, error)
}

type PostgresReadinessScoreRepository struct {
	db database.DB
}

func NewPostgresReadinessScoreRepository(db database.DB) *PostgresReadinessScoreRepository {
	return &PostgresReadinessScoreRepository{db: db}
}

func (r *PostgresReadinessScoreRepository) Upsert(ctx context.Context, rs ReadinessScore) (ReadinessScore, error) {
	breakdown, err := json.Marshal(rs.PillarBreakdown)
	if err != nil {
		return ReadinessScore{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO readiness_scores (profile_id, job_role_id, company_level, score, verified_score, unverified_score, pillar_breakdown)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (profile_id, job_role_id, company_level) DO UPDATE SET
			score = EXCLUDED.score,
			verified_score = EXCLUDED.verified_score,
			unverified_score = EXCLUDED.unverified_score,
			pillar_breakdown = EXCLUDED.pillar_breakdown,
			updated_at = now()
		 RETURNING id, updated_at`,
		rs.ProfileID, rs.JobRoleID, rs.CompanyLevel, rs.Score, rs.VerifiedScore, rs.UnverifiedScore, breakdown,
	)
	if err := row.Scan(&rs.ID, &rs.UpdatedAt); err != nil {
		return ReadinessScore{}, err
	}
	return rs, nil
}

func (r *PostgresReadinessScoreRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]ReadinessScore, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, job_role_id, company_level, score, verified_score, unverified_score, pillar_breakdown, updated_at
		 FROM readiness_scores WHERE profile_id = $1 ORDER BY updated_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReadinessScore, 0)
	for rows.Next() {
		var rs ReadinessScore
		var breakdown []byte
		if err := rows.Scan(&rs.ID, &rs.ProfileID, &rs.JobRoleID, &rs.CompanyLevel, &rs.Score, &rs.VerifiedScore, &rs.UnverifiedScore, &breakdown, &rs.UpdatedAt); err != nil {
			return nil, err
		}
		if len(breakdown) > 0 {
			if err := json.Unmarshal(breakdown, &rs.PillarBreakdown); err != nil {
				return nil, err
			}
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
