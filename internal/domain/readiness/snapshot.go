package readiness

import (
	"math"

	"iri-backend/internal/domain/profile"

	"github.com/google/uuid"
)

// Snapshot is the persisted, skill-centric view of readiness: the stored
// verification_score of each profile skill averaged per pillar, split
// into verified and unverified contributions. It predates the sub-pillar
// engine and remains the shape ReadinessScore rows are written in; the
// Engine stays authoritative for interactive IRI responses.

type WeightedPillar struct {
	Name   string
	Weight float64
}

type SnapshotPillar struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type Snapshot struct {
	Score           float64                   `json:"score"`
	VerifiedScore   float64                   `json:"verified_score"`
	UnverifiedScore float64                   `json:"unverified_score"`
	Breakdown       map[string]SnapshotPillar `json:"breakdown"`
}

// snapshotMultiplier scales stored snapshots per tier. The scale differs
// from the interactive engine's: snapshots discount easier tiers instead
// of inflating harder ones.
func snapshotMultiplier(level CompanyLevel) float64 {
	switch level {
	case LevelStartup:
		return 0.7
	case LevelCorporate:
		return 0.85
	default:
		return 1.0
	}
}

// CalculateSnapshot aggregates stored per-skill verification scores into
// a pillar-weighted snapshot for one company tier.
func CalculateSnapshot(skills []profile.ProfileSkill, weights map[uuid.UUID]WeightedPillar, level CompanyLevel) Snapshot {
	type pillarAccum struct {
		total    float64
		count    int
		verified float64
	}

	byPillar := make(map[uuid.UUID]*pillarAccum)
	for _, ps := range skills {
		if ps.PillarID == nil {
			continue
		}
		acc := byPillar[*ps.PillarID]
		if acc == nil {
			acc = &pillarAccum{}
			byPillar[*ps.PillarID] = acc
		}
		acc.total += ps.VerificationScore
		acc.count++
		if ps.VerificationScore > 0 {
			acc.verified += ps.VerificationScore
		}
	}

	totalScore := 0.0
	verifiedScore := 0.0
	unverifiedScore := 0.0
	breakdown := make(map[string]SnapshotPillar, len(weights))

	for pillarID, wp := range weights {
		acc := byPillar[pillarID]
		if acc == nil || acc.count == 0 {
			breakdown[wp.Name] = SnapshotPillar{Score: 0, Weight: wp.Weight, Contribution: 0}
			continue
		}

		avg := acc.total / float64(acc.count)
		contribution := avg * wp.Weight / 100
		totalScore += contribution

		if acc.verified > 0 {
			verifiedScore += contribution
		} else {
			unverifiedScore += contribution
		}

		breakdown[wp.Name] = SnapshotPillar{
			Score:        avg,
			Weight:       wp.Weight,
			Contribution: contribution,
		}
	}

	multiplier := snapshotMultiplier(level)
	return Snapshot{
		Score:           math.Min(totalScore*multiplier, 100),
		VerifiedScore:   math.Min(verifiedScore*multiplier, 100),
		UnverifiedScore: math.Min(unverifiedScore*multiplier, 100),
		Breakdown:       breakdown,
	}
}
