package seeder

import (
	"context"
	"fmt"

	"iri-backend/internal/database"
)

// JobRolesSeeder inserts the default job roles and their per-pillar
// weightings. Weights are percentages and sum to 100 for every role.
type JobRolesSeeder struct{}

func (JobRolesSeeder) Name() string { return "job_roles" }

func (JobRolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_roles", "id", "name", "description", "is_active"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_pillar_weights", "id", "job_role_id", "pillar_id", "weight_percent"); err != nil {
		return err
	}

	type weights struct {
		Technical  float64
		Cognitive  float64
		Behavioral float64
		Domain     float64
	}

	roles := []struct {
		Name        string
		Description string
		Weights     weights
	}{
		{"Software Engineer", "Designs and builds software systems end to end", weights{40, 30, 20, 10}},
		{"Frontend Developer", "Builds user-facing web interfaces", weights{35, 25, 25, 15}},
		{"Backend Developer", "Builds server-side services and APIs", weights{40, 30, 15, 15}},
		{"Full Stack Developer", "Works across frontend and backend", weights{38, 28, 18, 16}},
		{"DevOps Engineer", "Automates infrastructure, delivery, and operations", weights{45, 25, 15, 15}},
		{"Data Analyst", "Turns data into insight and reporting", weights{35, 35, 18, 12}},
		{"Data Scientist", "Builds statistical and machine learning models", weights{40, 35, 15, 10}},
		{"Cybersecurity Analyst", "Protects systems and responds to threats", weights{45, 28, 12, 15}},
		{"UI/UX Designer", "Designs usable, accessible product experiences", weights{30, 25, 30, 15}},
		{"Mobile App Developer", "Builds native and cross-platform mobile apps", weights{42, 28, 18, 12}},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	pillarIDs := map[string]string{}
	rows, err := tx.Query(ctx, `SELECT id, name FROM pillars`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		pillarIDs[name] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, r := range roles {
		var roleID string
		err := tx.QueryRow(
			ctx,
			`INSERT INTO job_roles (id, name, description, is_active)
			 VALUES (gen_random_uuid(), $1, $2, TRUE)
			 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			 RETURNING id`,
			r.Name,
			r.Description,
		).Scan(&roleID)
		if err != nil {
			return fmt.Errorf("job role %s: %w", r.Name, err)
		}

		perPillar := map[string]float64{
			"Technical Skills":        r.Weights.Technical,
			"Cognitive Abilities":     r.Weights.Cognitive,
			"Behavioral Competencies": r.Weights.Behavioral,
			"Domain Knowledge":        r.Weights.Domain,
		}
		for pillarName, pct := range perPillar {
			pillarID, ok := pillarIDs[pillarName]
			if !ok {
				return fmt.Errorf("job role %s: pillar %s not seeded", r.Name, pillarName)
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO job_pillar_weights (id, job_role_id, pillar_id, weight_percent)
				 VALUES (gen_random_uuid(), $1, $2, $3)
				 ON CONFLICT (job_role_id, pillar_id) DO UPDATE SET weight_percent = EXCLUDED.weight_percent`,
				roleID,
				pillarID,
				pct,
			); err != nil {
				return fmt.Errorf("weight %s/%s: %w", r.Name, pillarName, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
