package seeder

import (
	"context"
	"fmt"

	"iri-backend/internal/database"
)

// SkillsSeeder inserts a starter skills catalog mapped to sub-pillars.
// Profile submissions can still create skills outside this list.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "pillar_id", "sub_pillar_id"); err != nil {
		return err
	}

	items := []struct {
		Name      string
		SubPillar string
	}{
		{"Python", "Programming Languages"},
		{"JavaScript", "Programming Languages"},
		{"TypeScript", "Programming Languages"},
		{"Go", "Programming Languages"},
		{"Java", "Programming Languages"},
		{"React", "Frameworks & Libraries"},
		{"Vue.js", "Frameworks & Libraries"},
		{"Django", "Frameworks & Libraries"},
		{"Node.js", "Frameworks & Libraries"},
		{"PostgreSQL", "Databases"},
		{"MySQL", "Databases"},
		{"MongoDB", "Databases"},
		{"Redis", "Databases"},
		{"Docker", "DevOps & Cloud"},
		{"Kubernetes", "DevOps & Cloud"},
		{"AWS", "DevOps & Cloud"},
		{"CI/CD", "DevOps & Cloud"},
		{"Git", "Tools & Technologies"},
		{"Linux", "Tools & Technologies"},
		{"Figma", "Tools & Technologies"},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, pillar_id, sub_pillar_id)
			 SELECT gen_random_uuid(), $1, sp.pillar_id, sp.id
			 FROM sub_pillars sp WHERE sp.name = $2
			 ON CONFLICT (name) DO UPDATE
			 SET pillar_id = EXCLUDED.pillar_id, sub_pillar_id = EXCLUDED.sub_pillar_id`,
			it.Name,
			it.SubPillar,
		); err != nil {
			return fmt.Errorf("skill %s: %w", it.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
