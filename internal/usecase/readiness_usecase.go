package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"iri-backend/internal/domain/readiness"
	"iri-backend/internal/infrastructure/cache"
	"iri-backend/internal/repository"

	"github.com/google/uuid"
)

const readinessCacheTTL = time.Hour

var ErrJobRoleNotFound = errors.New("job role not found")

// JobScore is one row of the all-jobs ranking.
type JobScore struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	IRIScore  float64   `json:"iri_score"`
	BaseScore float64   `json:"base_score"`
}

type AllJobsResult struct {
	CompanyLevel readiness.CompanyLevel `json:"company_level"`
	Results      []JobScore             `json:"results"`
}

type RoleScore struct {
	Role  string    `json:"role"`
	Score float64   `json:"score"`
	ID    uuid.UUID `json:"id"`
}

type LevelSummary struct {
	AverageScore float64     `json:"average_score"`
	Top3         []RoleScore `json:"top_3"`
}

type SummaryResult struct {
	OverallAverage float64                                 `json:"overall_average"`
	BestFitRole    *RoleScore                              `json:"best_fit_role"`
	CompanyLevels  map[readiness.CompanyLevel]LevelSummary `json:"company_levels"`
}

type ReadinessUsecase interface {
	Calculate(ctx context.Context, userID uuid.UUID, jobRoleID uuid.UUID, level readiness.CompanyLevel) (readiness.Result, error)
	CalculateAllLevels(ctx context.Context, userID uuid.UUID, jobRoleID uuid.UUID) (map[readiness.CompanyLevel]readiness.Snapshot, error)
	AllJobs(ctx context.Context, userID uuid.UUID, level readiness.CompanyLevel) (AllJobsResult, error)
	Summary(ctx context.Context, userID uuid.UUID) (SummaryResult, error)
	Scores(ctx context.Context, userID uuid.UUID) ([]repository.ReadinessScore, error)
}

type Readiness struct {
	engine   *readiness.Engine
	catalog  repository.CatalogRepository
	profiles repository.ProfileRepository
	verifs   repository.VerificationRepository
	scores   repository.ReadinessScoreRepository
	cache    Cache
	notifier Notifier
	logger   *log.Logger

	now func() time.Time
}

func NewReadinessUsecase(
	catalogRepo repository.CatalogRepository,
	profiles repository.ProfileRepository,
	verifs repository.VerificationRepository,
	scores repository.ReadinessScoreRepository,
	c Cache,
	notifier Notifier,
	logger *log.Logger,
) *Readiness {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Readiness{
		engine:   readiness.NewEngine(),
		catalog:  catalogRepo,
		profiles: profiles,
		verifs:   verifs,
		scores:   scores,
		cache:    c,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Readiness) Calculate(ctx context.Context, userID uuid.UUID, jobRoleID uuid.UUID, level readiness.CompanyLevel) (readiness.Result, error) {
	if !readiness.ValidCompanyLevel(level) {
		level = readiness.LevelStartup
	}

	jobRole, err := u.catalog.GetJobRoleByID(ctx, jobRoleID)
	if err != nil {
		if errors.Is(err, repository.ErrJobRoleNotFound) {
			return readiness.Result{}, ErrJobRoleNotFound
		}
		return readiness.Result{}, ErrInternal
	}
	if !jobRole.IsActive {
		return readiness.Result{}, ErrJobRoleNotFound
	}

	key := cache.ReadinessKey(userID, jobRoleID, string(level))
	var cached readiness.Result
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	in, err := u.buildInput(ctx, userID, jobRole.ID, jobRole.Name)
	if err != nil {
		return readiness.Result{}, err
	}

	result := u.engine.Calculate(in, level)

	if err := u.cache.SetJSON(ctx, key, result, readinessCacheTTL); err != nil && u.logger != nil {
		u.logger.Printf("Readiness | cache write failed key=%s err=%v", key, err)
	}
	return result, nil
}

// CalculateAllLevels recomputes and persists the stored snapshot rows
// for every company tier of one job role.
func (u *Readiness) CalculateAllLevels(ctx context.Context, userID uuid.UUID, jobRoleID uuid.UUID) (map[readiness.CompanyLevel]readiness.Snapshot, error) {
	jobRole, err := u.catalog.GetJobRoleByID(ctx, jobRoleID)
	if err != nil {
		if errors.Is(err, repository.ErrJobRoleNotFound) {
			return nil, ErrJobRoleNotFound
		}
		return nil, ErrInternal
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}

	skills, err := u.profiles.FindSkills(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	weights, err := u.catalog.GetJobWeightedPillars(ctx, jobRole.ID)
	if err != nil {
		return nil, ErrInternal
	}

	results := make(map[readiness.CompanyLevel]readiness.Snapshot, 3)
	for _, level := range readiness.AllCompanyLevels() {
		snap := readiness.CalculateSnapshot(skills, weights, level)
		if _, err := u.scores.Upsert(ctx, repository.ReadinessScore{
			ProfileID:       p.ID,
			JobRoleID:       jobRole.ID,
			CompanyLevel:    level,
			Score:           snap.Score,
			VerifiedScore:   snap.VerifiedScore,
			UnverifiedScore: snap.UnverifiedScore,
			PillarBreakdown: snap.Breakdown,
		}); err != nil {
			return nil, ErrInternal
		}
		results[level] = snap
	}

	u.notifier.Notify(userID, EventReadinessUpdated, map[string]any{
		"job_role_id": jobRole.ID,
		"job_role":    jobRole.Name,
	})

	return results, nil
}

func (u *Readiness) AllJobs(ctx context.Context, userID uuid.UUID, level readiness.CompanyLevel) (AllJobsResult, error) {
	if !readiness.ValidCompanyLevel(level) {
		return AllJobsResult{}, ErrInvalidInput
	}

	roles, err := u.catalog.ListActiveJobRoles(ctx)
	if err != nil {
		return AllJobsResult{}, ErrInternal
	}

	out := AllJobsResult{CompanyLevel: level, Results: make([]JobScore, 0, len(roles))}
	for _, role := range roles {
		in, err := u.buildInput(ctx, userID, role.ID, role.Name)
		if err != nil {
			return AllJobsResult{}, err
		}
		result := u.engine.Calculate(in, level)
		out.Results = append(out.Results, JobScore{
			ID:        role.ID,
			Role:      role.Name,
			IRIScore:  result.IRIScore,
			BaseScore: result.BaseScore,
		})
	}

	sort.SliceStable(out.Results, func(i, j int) bool {
		return out.Results[i].IRIScore > out.Results[j].IRIScore
	})
	return out, nil
}

func (u *Readiness) Summary(ctx context.Context, userID uuid.UUID) (SummaryResult, error) {
	roles, err := u.catalog.ListActiveJobRoles(ctx)
	if err != nil {
		return SummaryResult{}, ErrInternal
	}

	summary := SummaryResult{
		CompanyLevels: make(map[readiness.CompanyLevel]LevelSummary, 3),
	}

	for _, level := range readiness.AllCompanyLevels() {
		scores := make([]RoleScore, 0, len(roles))
		total := 0.0
		for _, role := range roles {
			in, err := u.buildInput(ctx, userID, role.ID, role.Name)
			if err != nil {
				return SummaryResult{}, err
			}
			result := u.engine.Calculate(in, level)
			scores = append(scores, RoleScore{Role: role.Name, Score: result.IRIScore, ID: role.ID})
			total += result.IRIScore
		}

		sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
		top := scores
		if len(top) > 3 {
			top = top[:3]
		}

		avg := 0.0
		if len(scores) > 0 {
			avg = total / float64(len(scores))
		}
		summary.CompanyLevels[level] = LevelSummary{AverageScore: avg, Top3: top}
	}

	levelCount := 0
	levelTotal := 0.0
	for _, ls := range summary.CompanyLevels {
		levelTotal += ls.AverageScore
		levelCount++
	}
	if levelCount > 0 {
		summary.OverallAverage = levelTotal / float64(levelCount)
	}

	if startup, ok := summary.CompanyLevels[readiness.LevelStartup]; ok && len(startup.Top3) > 0 {
		best := startup.Top3[0]
		summary.BestFitRole = &best
	}

	return summary, nil
}

// Scores returns the persisted snapshot rows, newest first.
func (u *Readiness) Scores(ctx context.Context, userID uuid.UUID) ([]repository.ReadinessScore, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}
	rows, err := u.scores.FindByProfile(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

// buildInput loads the full engine snapshot for one user and job role.
func (u *Readiness) buildInput(ctx context.Context, userID uuid.UUID, jobRoleID uuid.UUID, jobRoleName string) (readiness.Input, error) {
	in := readiness.Input{JobRoleName: jobRoleName, Now: u.now()}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return readiness.Input{}, ErrProfileNotFound
		}
		return readiness.Input{}, ErrInternal
	}
	in.HasProfile = true

	if in.Pillars, err = u.catalog.ListPillars(ctx); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.SubPillars, err = u.catalog.ListSubPillars(ctx); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.JobWeights, err = u.catalog.GetJobWeights(ctx, jobRoleID); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.Skills, err = u.profiles.FindSkills(ctx, p.ID); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.Experiences, err = u.profiles.FindExperiences(ctx, p.ID); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.Projects, err = u.profiles.FindProjects(ctx, p.ID); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.Certifications, err = u.profiles.FindCertifications(ctx, p.ID); err != nil {
		return readiness.Input{}, ErrInternal
	}
	if in.Verifications, err = u.verifs.FindByProfile(ctx, p.ID); err != nil {
		return readiness.Input{}, ErrInternal
	}

	return in, nil
}
