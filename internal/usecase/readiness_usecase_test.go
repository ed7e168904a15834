package usecase

import (
	"context"
	"errors"
	"testing"

	"iri-backend/internal/domain/catalog"
	"iri-backend/internal/domain/profile"
	"iri-backend/internal/domain/readiness"
	"iri-backend/internal/infrastructure/cache"
	"iri-backend/internal/repository"

	"github.com/google/uuid"
)

type readinessFixture struct {
	uc       *Readiness
	catalog  *stubCatalogRepo
	profiles *stubProfileRepo
	scores   *stubScoreRepo
	cache    *stubCache
	notifier *stubNotifier

	userID    uuid.UUID
	jobRoleID uuid.UUID
}

func newReadinessFixture() *readinessFixture {
	techID := uuid.New()
	langsID := uuid.New()
	jobRoleID := uuid.New()

	cat := &stubCatalogRepo{
		pillars: []catalog.Pillar{{ID: techID, Name: "Technical Skills"}},
		subPillars: []catalog.SubPillar{
			{ID: langsID, PillarID: techID, Name: "Programming Languages", Weight: 1},
		},
		jobRoles: []catalog.JobRole{
			{ID: jobRoleID, Name: "Backend Developer", IsActive: true},
		},
		weights: map[uuid.UUID]float64{techID: 100},
		weighted: map[uuid.UUID]readiness.WeightedPillar{
			techID: {Name: "Technical Skills", Weight: 100},
		},
	}

	profiles := &stubProfileRepo{
		profile: profile.StudentProfile{ID: uuid.New(), UserID: uuid.New()},
		skills: []profile.ProfileSkill{
			{ID: uuid.New(), SkillName: "Python", SubPillarID: &langsID, PillarID: &techID, VerificationScore: 80},
		},
	}

	scores := &stubScoreRepo{}
	c := newStubCache()
	notifier := &stubNotifier{}

	uc := NewReadinessUsecase(cat, profiles, newStubVerificationRepo(), scores, c, notifier, nil)

	return &readinessFixture{
		uc:       uc,
		catalog:  cat,
		profiles: profiles,
		scores:   scores,
		cache:    c,
		notifier: notifier,
		userID:   profiles.profile.UserID,
		jobRoleID: jobRoleID,
	}
}

func TestCalculateUnknownJobRole(t *testing.T) {
	f := newReadinessFixture()
	_, err := f.uc.Calculate(context.Background(), f.userID, uuid.New(), readiness.LevelStartup)
	if !errors.Is(err, ErrJobRoleNotFound) {
		t.Fatalf("expected ErrJobRoleNotFound, got %v", err)
	}
}

func TestCalculateInactiveJobRole(t *testing.T) {
	f := newReadinessFixture()
	f.catalog.jobRoles[0].IsActive = false

	_, err := f.uc.Calculate(context.Background(), f.userID, f.jobRoleID, readiness.LevelStartup)
	if !errors.Is(err, ErrJobRoleNotFound) {
		t.Fatalf("expected ErrJobRoleNotFound, got %v", err)
	}
}

func TestCalculateInvalidLevelFallsBackToStartup(t *testing.T) {
	f := newReadinessFixture()

	res, err := f.uc.Calculate(context.Background(), f.userID, f.jobRoleID, readiness.CompanyLevel("galactic"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CompanyLevel != readiness.LevelStartup {
		t.Fatalf("got level %s, want startup", res.CompanyLevel)
	}
}

func TestCalculateCachesResult(t *testing.T) {
	f := newReadinessFixture()

	first, err := f.uc.Calculate(context.Background(), f.userID, f.jobRoleID, readiness.LevelStartup)
	if err != nil {
		t.Fatalf("first calculate: %v", err)
	}
	key := cache.ReadinessKey(f.userID, f.jobRoleID, string(readiness.LevelStartup))
	if len(f.cache.sets) != 1 || f.cache.sets[0] != key {
		t.Fatalf("expected one cache write under %s, got %v", key, f.cache.sets)
	}

	// A second call must be served from the cache, not recomputed.
	second, err := f.uc.Calculate(context.Background(), f.userID, f.jobRoleID, readiness.LevelStartup)
	if err != nil {
		t.Fatalf("second calculate: %v", err)
	}
	if len(f.cache.sets) != 1 {
		t.Fatal("cache hit must not rewrite the entry")
	}
	if second.IRIScore != first.IRIScore {
		t.Fatalf("cached result differs: %v vs %v", second.IRIScore, first.IRIScore)
	}
}

func TestCalculateWithoutProfile(t *testing.T) {
	f := newReadinessFixture()
	f.profiles.profileErr = repository.ErrProfileNotFound

	_, err := f.uc.Calculate(context.Background(), f.userID, f.jobRoleID, readiness.LevelStartup)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestCalculateAllLevelsUpsertsThreeRows(t *testing.T) {
	f := newReadinessFixture()

	results, err := f.uc.CalculateAllLevels(context.Background(), f.userID, f.jobRoleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected a snapshot per level, got %d", len(results))
	}
	if len(f.scores.upserts) != 3 {
		t.Fatalf("expected 3 upserted rows, got %d", len(f.scores.upserts))
	}

	seen := map[readiness.CompanyLevel]bool{}
	for _, row := range f.scores.upserts {
		seen[row.CompanyLevel] = true
		if row.ProfileID != f.profiles.profile.ID || row.JobRoleID != f.jobRoleID {
			t.Fatalf("row keys wrong: %+v", row)
		}
	}
	for _, level := range readiness.AllCompanyLevels() {
		if !seen[level] {
			t.Fatalf("missing snapshot row for level %s", level)
		}
	}

	// Snapshot multipliers discount easier tiers.
	if !(results[readiness.LevelStartup].Score < results[readiness.LevelCorporate].Score &&
		results[readiness.LevelCorporate].Score < results[readiness.LevelLeading].Score) {
		t.Fatalf("snapshot ordering wrong: %+v", results)
	}

	if len(f.notifier.events) != 1 || f.notifier.events[0].Event != EventReadinessUpdated {
		t.Fatalf("expected one readiness_updated event, got %+v", f.notifier.events)
	}
}

func TestAllJobsInvalidLevel(t *testing.T) {
	f := newReadinessFixture()
	_, err := f.uc.AllJobs(context.Background(), f.userID, readiness.CompanyLevel("galactic"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAllJobsSortsDescending(t *testing.T) {
	f := newReadinessFixture()
	f.catalog.jobRoles = append(f.catalog.jobRoles,
		catalog.JobRole{ID: uuid.New(), Name: "Data Analyst", IsActive: true},
		catalog.JobRole{ID: uuid.New(), Name: "Retired Role", IsActive: false},
	)

	out, err := f.uc.AllJobs(context.Background(), f.userID, readiness.LevelStartup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("inactive roles must be skipped, got %d results", len(out.Results))
	}
	for i := 1; i < len(out.Results); i++ {
		if out.Results[i-1].IRIScore < out.Results[i].IRIScore {
			t.Fatalf("results not sorted descending: %+v", out.Results)
		}
	}
}

func TestSummaryShape(t *testing.T) {
	f := newReadinessFixture()

	sum, err := f.uc.Summary(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.CompanyLevels) != 3 {
		t.Fatalf("expected all three levels, got %d", len(sum.CompanyLevels))
	}
	for level, ls := range sum.CompanyLevels {
		if len(ls.Top3) == 0 || len(ls.Top3) > 3 {
			t.Fatalf("level %s: top_3 length %d", level, len(ls.Top3))
		}
	}
	if sum.BestFitRole == nil {
		t.Fatal("best fit role must come from the startup ranking")
	}
	if sum.BestFitRole.Role != sum.CompanyLevels[readiness.LevelStartup].Top3[0].Role {
		t.Fatalf("best fit %q is not the startup top role", sum.BestFitRole.Role)
	}
}

func TestScoresRequiresProfile(t *testing.T) {
	f := newReadinessFixture()
	f.profiles.profileErr = repository.ErrProfileNotFound

	_, err := f.uc.Scores(context.Background(), f.userID)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
