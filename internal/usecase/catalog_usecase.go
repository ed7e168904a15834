package usecase

import (
	"context"

	"iri-backend/internal/domain/catalog"
	"iri-backend/internal/repository"
)

// PillarWithSubPillars is the public catalog read model: each pillar
// carries its sub-pillars inline.
type PillarWithSubPillars struct {
	catalog.Pillar
	SubPillars []catalog.SubPillar `json:"sub_pillars"`
}

type CatalogUsecase interface {
	Pillars(ctx context.Context) ([]PillarWithSubPillars, error)
	JobRoles(ctx context.Context) ([]catalog.JobRole, error)
	Skills(ctx context.Context) ([]catalog.Skill, error)
}

type Catalog struct {
	repo repository.CatalogRepository
}

func NewCatalogUsecase(repo repository.CatalogRepository) *Catalog {
	return &Catalog{repo: repo}
}

func (u *Catalog) Pillars(ctx context.Context) ([]PillarWithSubPillars, error) {
	pillars, err := u.repo.ListPillars(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	subPillars, err := u.repo.ListSubPillars(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]PillarWithSubPillars, 0, len(pillars))
	for _, p := range pillars {
		item := PillarWithSubPillars{Pillar: p, SubPillars: []catalog.SubPillar{}}
		for _, sp := range subPillars {
			if sp.PillarID == p.ID {
				item.SubPillars = append(item.SubPillars, sp)
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (u *Catalog) JobRoles(ctx context.Context) ([]catalog.JobRole, error) {
	roles, err := u.repo.ListActiveJobRoles(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return roles, nil
}

func (u *Catalog) Skills(ctx context.Context) ([]catalog.Skill, error) {
	skills, err := u.repo.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return skills, nil
}
