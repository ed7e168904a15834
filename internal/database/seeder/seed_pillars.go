package seeder

import (
	"context"
	"fmt"

	"iri-backend/internal/database"
)

// PillarsSeeder inserts the four core pillars and their sub-pillars.
type PillarsSeeder struct{}

func (PillarsSeeder) Name() string { return "pillars" }

func (PillarsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "pillars", "id", "name", "description", "default_weight"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "sub_pillars", "id", "pillar_id", "name", "weight"); err != nil {
		return err
	}

	pillars := []struct {
		Name        string
		Description string
		SubPillars  []string
	}{
		{
			Name:        "Technical Skills",
			Description: "Hard technical skills, programming languages, tools, and technical knowledge",
			SubPillars: []string{
				"Programming Languages",
				"Frameworks & Libraries",
				"Databases",
				"DevOps & Cloud",
				"Tools & Technologies",
			},
		},
		{
			Name:        "Cognitive Abilities",
			Description: "Problem-solving, learning ability, critical thinking, analytical skills",
			SubPillars: []string{
				"Problem Solving",
				"Logical Thinking",
				"Learning Agility",
				"Analytical Thinking",
				"Research Ability",
			},
		},
		{
			Name:        "Behavioral Competencies",
			Description: "Communication, teamwork, leadership, adaptability, work ethic",
			SubPillars: []string{
				"Communication",
				"Teamwork & Collaboration",
				"Leadership",
				"Adaptability",
				"Reliability & Work Ethic",
			},
		},
		{
			Name:        "Domain Knowledge",
			Description: "Industry-specific knowledge, best practices, domain expertise",
			SubPillars: []string{
				"IT Industry Knowledge",
				"Best Practices",
				"Emerging Technologies",
				"Standards & Compliance",
			},
		},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, p := range pillars {
		var pillarID string
		err := tx.QueryRow(
			ctx,
			`INSERT INTO pillars (id, name, description, default_weight)
			 VALUES (gen_random_uuid(), $1, $2, 25)
			 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			 RETURNING id`,
			p.Name,
			p.Description,
		).Scan(&pillarID)
		if err != nil {
			return fmt.Errorf("pillar %s: %w", p.Name, err)
		}

		for _, sp := range p.SubPillars {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO sub_pillars (id, pillar_id, name)
				 VALUES (gen_random_uuid(), $1, $2)
				 ON CONFLICT (pillar_id, name) DO NOTHING`,
				pillarID,
				sp,
			); err != nil {
				return fmt.Errorf("sub-pillar %s: %w", sp, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
