package catalog

import "github.com/google/uuid"

// Pillar is a top-level competency category (e.g. Technical Skills).
type Pillar struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DefaultWeight float64   `json:"default_weight"`
}

// SubPillar is a finer-grained competency inside a pillar. Weight is
// relative within the pillar and is not bounded to 100.
type SubPillar struct {
	ID          uuid.UUID `json:"id"`
	PillarID    uuid.UUID `json:"pillar_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"`
}

type Skill struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	PillarID    *uuid.UUID `json:"pillar_id,omitempty"`
	SubPillarID *uuid.UUID `json:"sub_pillar_id,omitempty"`
}

type JobRole struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
}

// JobPillarWeight sets how much a pillar counts for a job role, in
// percent. Weights for a role are not required to sum to 100.
type JobPillarWeight struct {
	JobRoleID     uuid.UUID `json:"job_role_id"`
	PillarID      uuid.UUID `json:"pillar_id"`
	WeightPercent float64   `json:"weight_percent"`
}
