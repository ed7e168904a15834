package repository

import (
	"context"
	"errors"

	"iri-backend/internal/database"
	"iri-backend/internal/domain/catalog"
	"iri-backend/internal/domain/readiness"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobRoleNotFound = errors.New("job role not found")

type CatalogRepository interface {
	ListPillars(ctx context.Context) ([]catalog.Pillar, error)
	ListSubPillars(ctx context.Context) ([]catalog.SubPillar, error)
	ListSkills(ctx context.Context) ([]catalog.Skill, error)
	ListActiveJobRoles(ctx context.Context) ([]catalog.JobRole, error)
	GetJobRoleByID(ctx context.Context, id uuid.UUID) (catalog.JobRole, error)
	GetJobWeights(ctx context.Context, jobRoleID uuid.UUID) (map[uuid.UUID]float64, error)
	GetJobWeightedPillars(ctx context.Context, jobRoleID uuid.UUID) (map[uuid.UUID]readiness.WeightedPillar, error)
}

type PostgresCatalogRepository struct {
	db database.DB
}

func NewPostgresCatalogRepository(db database.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) ListPillars(ctx context.Context) ([]catalog.Pillar, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, default_weight FROM pillars ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Pillar, 0)
	for rows.Next() {
		var p catalog.Pillar
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.DefaultWeight); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) ListSubPillars(ctx context.Context) ([]catalog.SubPillar, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, pillar_id, name, description, weight FROM sub_pillars ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.SubPillar, 0)
	for rows.Next() {
		var sp catalog.SubPillar
		if err := rows.Scan(&sp.ID, &sp.PillarID, &sp.Name, &sp.Description, &sp.Weight); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) ListSkills(ctx context.Context) ([]catalog.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, pillar_id, sub_pillar_id FROM skills ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Skill, 0)
	for rows.Next() {
		var s catalog.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.PillarID, &s.SubPillarID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) ListActiveJobRoles(ctx context.Context) ([]catalog.JobRole, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, is_active FROM job_roles WHERE is_active ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.JobRole, 0)
	for rows.Next() {
		var jr catalog.JobRole
		if err := rows.Scan(&jr.ID, &jr.Name, &jr.Description, &jr.IsActive); err != nil {
			return nil, err
		}
		out = append(out, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) GetJobRoleByID(ctx context.Context, id uuid.UUID) (catalog.JobRole, error) {
	var jr catalog.JobRole
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, is_active FROM job_roles WHERE id = $1`,
		id,
	)
	if err := row.Scan(&jr.ID, &jr.Name, &jr.Description, &jr.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.JobRole{}, ErrJobRoleNotFound
		}
		return catalog.JobRole{}, err
	}
	return jr, nil
}

func (r *PostgresCatalogRepository) GetJobWeights(ctx context.Context, jobRoleID uuid.UUID) (map[uuid.UUID]float64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pillar_id, weight_percent FROM job_pillar_weights WHERE job_role_id = $1`,
		jobRoleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]float64)
	for rows.Next() {
		var pillarID uuid.UUID
		var weight float64
		if err := rows.Scan(&pillarID, &weight); err != nil {
			return nil, err
		}
		out[pillarID] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) GetJobWeightedPillars(ctx context.Context, jobRoleID uuid.UUID) (map[uuid.UUID]readiness.WeightedPillar, error) {
	rows, err := r.db.Query(ctx,
		`SELECT w.pillar_id, p.name, w.weight_percent
		 FROM job_pillar_weights w
		 JOIN pillars p ON p.id = w.pillar_id
		 WHERE w.job_role_id = $1`,
		jobRoleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]readiness.WeightedPillar)
	for rows.Next() {
		var pillarID uuid.UUID
		var wp readiness.WeightedPillar
		if err := rows.Scan(&pillarID, &wp.Name, &wp.Weight); err != nil {
			return nil, err
		}
		out[pillarID] = wp
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
