package usecase

import (
	"context"
	"encoding/json"
	"time"

	"iri-backend/internal/domain/catalog"
	"iri-backend/internal/domain/profile"
	"iri-backend/internal/domain/readiness"
	"iri-backend/internal/domain/user"
	"iri-backend/internal/domain/verification"
	"iri-backend/internal/repository"

	"github.com/google/uuid"
)

type stubUserRepo struct {
	users map[string]user.User
	byID  map[uuid.UUID]user.User

	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: map[string]user.User{},
		byID:  map[uuid.UUID]user.User{},
	}
}

func (r *stubUserRepo) CreateUser(_ context.Context, u user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

type stubProfileRepo struct {
	profile    profile.StudentProfile
	profileErr error

	skills         []profile.ProfileSkill
	experiences    []profile.Experience
	projects       []profile.Project
	certifications []profile.Certification

	replacedWith *repository.ProfileReplaceInput
}

func (r *stubProfileRepo) GetByUserID(context.Context, uuid.UUID) (profile.StudentProfile, error) {
	if r.profileErr != nil {
		return profile.StudentProfile{}, r.profileErr
	}
	return r.profile, nil
}

func (r *stubProfileRepo) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (profile.StudentProfile, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *stubProfileRepo) Replace(_ context.Context, _ uuid.UUID, in repository.ProfileReplaceInput) (profile.StudentProfile, error) {
	r.replacedWith = &in
	return r.profile, nil
}

func (r *stubProfileRepo) FindEducations(context.Context, uuid.UUID) ([]profile.Education, error) {
	return nil, nil
}

func (r *stubProfileRepo) FindExperiences(context.Context, uuid.UUID) ([]profile.Experience, error) {
	return r.experiences, nil
}

func (r *stubProfileRepo) FindProjects(context.Context, uuid.UUID) ([]profile.Project, error) {
	return r.projects, nil
}

func (r *stubProfileRepo) FindCertifications(context.Context, uuid.UUID) ([]profile.Certification, error) {
	return r.certifications, nil
}

func (r *stubProfileRepo) FindVolunteering(context.Context, uuid.UUID) ([]profile.Volunteering, error) {
	return nil, nil
}

func (r *stubProfileRepo) FindSkills(context.Context, uuid.UUID) ([]profile.ProfileSkill, error) {
	return r.skills, nil
}

func (r *stubProfileRepo) GetExperience(_ context.Context, _ uuid.UUID, id uuid.UUID) (profile.Experience, error) {
	for _, e := range r.experiences {
		if e.ID == id {
			return e, nil
		}
	}
	return profile.Experience{}, repository.ErrProfileItemNotFound
}

func (r *stubProfileRepo) GetProject(_ context.Context, _ uuid.UUID, id uuid.UUID) (profile.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return profile.Project{}, repository.ErrProfileItemNotFound
}

func (r *stubProfileRepo) GetCertification(_ context.Context, _ uuid.UUID, id uuid.UUID) (profile.Certification, error) {
	for _, c := range r.certifications {
		if c.ID == id {
			return c, nil
		}
	}
	return profile.Certification{}, repository.ErrProfileItemNotFound
}

func (r *stubProfileRepo) GetProfileSkill(_ context.Context, _ uuid.UUID, id uuid.UUID) (profile.ProfileSkill, error) {
	for _, s := range r.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return profile.ProfileSkill{}, repository.ErrProfileItemNotFound
}

type stubVerificationRepo struct {
	requests  map[uuid.UUID]verification.Request
	order     []uuid.UUID
	createErr error
}

func newStubVerificationRepo() *stubVerificationRepo {
	return &stubVerificationRepo{requests: map[uuid.UUID]verification.Request{}}
}

func (r *stubVerificationRepo) Create(_ context.Context, req verification.Request) (verification.Request, error) {
	if r.createErr != nil {
		return verification.Request{}, r.createErr
	}
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	r.order = append(r.order, req.ID)
	return req, nil
}

func (r *stubVerificationRepo) GetByID(_ context.Context, profileID uuid.UUID, id uuid.UUID) (verification.Request, error) {
	req, ok := r.requests[id]
	if !ok || req.ProfileID != profileID {
		return verification.Request{}, repository.ErrVerificationNotFound
	}
	return req, nil
}

func (r *stubVerificationRepo) FindByProfile(_ context.Context, profileID uuid.UUID) ([]verification.Request, error) {
	out := make([]verification.Request, 0, len(r.order))
	for _, id := range r.order {
		if req := r.requests[id]; req.ProfileID == profileID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *stubVerificationRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]verification.Request, error) {
	asc, _ := r.FindByProfile(ctx, profileID)
	out := make([]verification.Request, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		out = append(out, asc[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubVerificationRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to verification.Status, score float64, completedAt *time.Time) (bool, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != from || !verification.CanTransition(from, to) {
		return false, nil
	}
	req.Status = to
	req.Score = score
	req.CompletedAt = completedAt
	r.requests[id] = req
	return true, nil
}

type stubCatalogRepo struct {
	pillars    []catalog.Pillar
	subPillars []catalog.SubPillar
	jobRoles   []catalog.JobRole
	weights    map[uuid.UUID]float64
	weighted   map[uuid.UUID]readiness.WeightedPillar
}

func (r *stubCatalogRepo) ListPillars(context.Context) ([]catalog.Pillar, error) {
	return r.pillars, nil
}

func (r *stubCatalogRepo) ListSubPillars(context.Context) ([]catalog.SubPillar, error) {
	return r.subPillars, nil
}

func (r *stubCatalogRepo) ListSkills(context.Context) ([]catalog.Skill, error) {
	return nil, nil
}

func (r *stubCatalogRepo) ListActiveJobRoles(context.Context) ([]catalog.JobRole, error) {
	out := make([]catalog.JobRole, 0, len(r.jobRoles))
	for _, role := range r.jobRoles {
		if role.IsActive {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *stubCatalogRepo) GetJobRoleByID(_ context.Context, id uuid.UUID) (catalog.JobRole, error) {
	for _, role := range r.jobRoles {
		if role.ID == id {
			return role, nil
		}
	}
	return catalog.JobRole{}, repository.ErrJobRoleNotFound
}

func (r *stubCatalogRepo) GetJobWeights(context.Context, uuid.UUID) (map[uuid.UUID]float64, error) {
	return r.weights, nil
}

func (r *stubCatalogRepo) GetJobWeightedPillars(context.Context, uuid.UUID) (map[uuid.UUID]readiness.WeightedPillar, error) {
	return r.weighted, nil
}

type stubScoreRepo struct {
	upserts []repository.ReadinessScore
	rows    []repository.ReadinessScore
}

func (r *stubScoreRepo) Upsert(_ context.Context, rs repository.ReadinessScore) (repository.ReadinessScore, error) {
	rs.ID = uuid.New()
	rs.UpdatedAt = time.Now()
	r.upserts = append(r.upserts, rs)
	return rs, nil
}

func (r *stubScoreRepo) FindByProfile(context.Context, uuid.UUID) ([]repository.ReadinessScore, error) {
	return r.rows, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type stubCache struct {
	data         map[string][]byte
	sets         []string
	invalidated  []uuid.UUID
	getJSONCalls int
}

func newStubCache() *stubCache {
	return &stubCache{data: map[string][]byte{}}
}

func (c *stubCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.getJSONCalls++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *stubCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.sets = append(c.sets, key)
	return nil
}

func (c *stubCache) InvalidateReadiness(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	for k := range c.data {
		delete(c.data, k)
	}
	return nil
}

type notified struct {
	UserID uuid.UUID
	Event  string
	Data   any
}

type stubNotifier struct {
	events []notified
}

func (n *stubNotifier) Notify(userID uuid.UUID, event string, payload any) {
	n.events = append(n.events, notified{UserID: userID, Event: event, Data: payload})
}
