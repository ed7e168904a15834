package readiness

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"iri-backend/internal/domain/catalog"
	"iri-backend/internal/domain/profile"
	"iri-backend/internal/domain/verification"

	"github.com/google/uuid"
)

type CompanyLevel string

const (
	LevelStartup   CompanyLevel = "startup"
	LevelCorporate CompanyLevel = "corporate"
	LevelLeading   CompanyLevel = "leading"
)

func ValidCompanyLevel(l CompanyLevel) bool {
	switch l {
	case LevelStartup, LevelCorporate, LevelLeading:
		return true
	}
	return false
}

func AllCompanyLevels() []CompanyLevel {
	return []CompanyLevel{LevelStartup, LevelCorporate, LevelLeading}
}

// Multiplier returns the difficulty multiplier for a company tier.
// Unknown tiers fall back to the startup baseline.
func Multiplier(l CompanyLevel) float64 {
	switch l {
	case LevelCorporate:
		return 1.15
	case LevelLeading:
		return 1.30
	default:
		return 1.0
	}
}

// Sub-pillar component mix.
const (
	skillsWeight        = 0.40
	experienceWeight    = 0.30
	projectWeight       = 0.20
	certificationWeight = 0.10
)

// Input is the full snapshot the engine computes over. The engine never
// touches storage: callers load everything up front, so two calls over
// the same snapshot produce identical results.
type Input struct {
	HasProfile     bool
	JobRoleName    string
	Pillars        []catalog.Pillar
	SubPillars     []catalog.SubPillar
	JobWeights     map[uuid.UUID]float64
	Skills         []profile.ProfileSkill
	Experiences    []profile.Experience
	Projects       []profile.Project
	Certifications []profile.Certification
	Verifications  []verification.Request
	Now            time.Time
}

type PillarBreakdown struct {
	Name                 string  `json:"name"`
	Score                float64 `json:"score"`
	WeightPercent        float64 `json:"weight_percent"`
	WeightedContribution float64 `json:"weighted_contribution"`
}

type PillarScore struct {
	Pillar string  `json:"pillar"`
	Score  float64 `json:"score"`
}

type Recommendation struct {
	Area       string `json:"area"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

type MethodImpact struct {
	Total      int     `json:"total"`
	Verified   int     `json:"verified"`
	Percentage float64 `json:"percentage"`
}

type VerificationImpact struct {
	TotalVerifications int                     `json:"total_verifications"`
	VerifiedCount      int                     `json:"verified_count"`
	VerificationRate   float64                 `json:"verification_rate"`
	ByMethod           map[string]MethodImpact `json:"by_type"`
}

type Result struct {
	IRIScore           float64            `json:"iri_score"`
	BaseScore          float64            `json:"base_score"`
	Breakdown          []PillarBreakdown  `json:"breakdown"`
	VerificationImpact VerificationImpact `json:"verification_impact"`
	CompanyLevel       CompanyLevel       `json:"company_level"`
	CompanyMultiplier  float64            `json:"company_multiplier"`
	Strengths          []PillarScore      `json:"strengths"`
	Gaps               []PillarScore      `json:"gaps"`
	Recommendations    []Recommendation   `json:"recommendations"`
	Error              string             `json:"error,omitempty"`
}

const incompleteProfileMessage = "Profile incomplete. Please add skills, experience, and projects."

// Engine computes Industry Readiness Index scores. Keyword sets are
// injected so tests and callers control matching behavior.
type Engine struct {
	ExperienceKeywords    Keywords
	ProjectKeywords       Keywords
	CertificationKeywords Keywords
}

func NewEngine() *Engine {
	return &Engine{
		ExperienceKeywords:    DefaultExperienceKeywords(),
		ProjectKeywords:       DefaultProjectKeywords(),
		CertificationKeywords: DefaultCertificationKeywords(),
	}
}

// Calculate produces the complete IRI result for one job role and
// company tier. A missing profile or a job role without pillar weights
// yields a zero-score result carrying an explanatory Error, never a Go
// error: consumers always get a displayable payload.
func (e *Engine) Calculate(in Input, level CompanyLevel) Result {
	multiplier := Multiplier(level)

	if !in.HasProfile {
		return emptyResult(level, multiplier)
	}
	if len(in.JobWeights) == 0 {
		return emptyResult(level, multiplier)
	}

	subPillarsByPillar := make(map[uuid.UUID][]catalog.SubPillar, len(in.Pillars))
	for _, sp := range in.SubPillars {
		subPillarsByPillar[sp.PillarID] = append(subPillarsByPillar[sp.PillarID], sp)
	}

	breakdown := make([]PillarBreakdown, 0, len(in.Pillars))
	baseScore := 0.0

	for _, pillar := range in.Pillars {
		score := e.pillarScore(in, subPillarsByPillar[pillar.ID])
		weight := in.JobWeights[pillar.ID]
		contribution := score * weight / 100

		breakdown = append(breakdown, PillarBreakdown{
			Name:                 pillar.Name,
			Score:                score,
			WeightPercent:        weight,
			WeightedContribution: contribution,
		})
		baseScore += contribution
	}

	iriScore := math.Min(baseScore*multiplier, 100)
	strengths, gaps := strengthsAndGaps(breakdown)

	return Result{
		IRIScore:           iriScore,
		BaseScore:          baseScore,
		Breakdown:          breakdown,
		VerificationImpact: verificationImpact(in.Verifications),
		CompanyLevel:       level,
		CompanyMultiplier:  multiplier,
		Strengths:          strengths,
		Gaps:               gaps,
		Recommendations:    recommendations(gaps, in.JobRoleName),
	}
}

// pillarScore is the weighted mean of the pillar's sub-pillar scores.
func (e *Engine) pillarScore(in Input, subPillars []catalog.SubPillar) float64 {
	if len(subPillars) == 0 {
		return 0
	}

	totalWeighted := 0.0
	totalWeight := 0.0
	for _, sp := range subPillars {
		totalWeighted += e.subPillarScore(in, sp) * sp.Weight
		totalWeight += sp.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return totalWeighted / totalWeight
}

func (e *Engine) subPillarScore(in Input, sp catalog.SubPillar) float64 {
	total := skillsWeight*e.skillsScore(in, sp) +
		experienceWeight*e.experienceScore(in, sp) +
		projectWeight*e.projectScore(in, sp) +
		certificationWeight*e.certificationScore(in, sp)
	return math.Min(total, 100)
}

// skillsScore averages verification-derived points across the profile
// skills attached to this sub-pillar.
func (e *Engine) skillsScore(in Input, sp catalog.SubPillar) float64 {
	matched := 0
	total := 0.0

	for _, ps := range in.Skills {
		if ps.SubPillarID == nil || *ps.SubPillarID != sp.ID {
			continue
		}
		matched++
		total += skillPoints(verificationFor(in.Verifications))
	}

	if matched == 0 {
		return 0
	}
	return math.Min(total/float64(matched), 100)
}

// verificationFor picks the request used to weight a skill. The match is
// profile-scoped with no filter on target or method.
// TODO: filter by the skill's own target once product confirms the
// per-skill scoping; today a profile with mixed requests can credit a
// skill with an unrelated verification.
func verificationFor(requests []verification.Request) *verification.Request {
	if len(requests) == 0 {
		return nil
	}
	return &requests[0]
}

func skillPoints(v *verification.Request) float64 {
	if v == nil {
		return 20
	}
	switch v.Method {
	case verification.MethodSelf:
		if v.Status == verification.StatusApproved {
			return 60
		}
		return 30
	case verification.MethodReferral:
		if v.Status == verification.StatusApproved {
			return 30
		}
		return 15
	case verification.MethodLink:
		if v.Status == verification.StatusApproved {
			return 10 + v.Score
		}
		return 5
	default:
		return 20
	}
}

func (e *Engine) experienceScore(in Input, sp catalog.SubPillar) float64 {
	matched := 0
	total := 0.0

	for _, exp := range in.Experiences {
		if e.ExperienceKeywords.Relevance(sp.Name, exp.RoleTitle, exp.Description) <= 0 {
			continue
		}

		years := yearsBetween(exp.StartDate, exp.EndDate, exp.IsCurrent, in.Now)
		yearsScore := math.Min(years*10, 50)

		total += yearsScore + companyTierBonus(exp.Company)
		matched++
	}

	if matched == 0 {
		return 0
	}
	return math.Min(total/float64(matched), 100)
}

func (e *Engine) projectScore(in Input, sp catalog.SubPillar) float64 {
	matched := 0
	total := 0.0

	for _, proj := range in.Projects {
		if e.ProjectKeywords.Relevance(sp.Name, proj.Title, proj.Description, proj.Technologies) <= 0 {
			continue
		}

		complexity := math.Min(float64(len(proj.Description))/20, 50)

		githubBonus := 0.0
		if proj.GithubLink != "" {
			githubBonus = 10
		}
		deploymentBonus := 0.0
		if proj.LiveLink != "" {
			deploymentBonus = 15
		}

		total += complexity + githubBonus + deploymentBonus
		matched++
	}

	if matched == 0 {
		return 0
	}
	return math.Min(total/float64(matched), 100)
}

func (e *Engine) certificationScore(in Input, sp catalog.SubPillar) float64 {
	matched := 0
	total := 0.0

	for _, cert := range in.Certifications {
		if e.CertificationKeywords.Relevance(sp.Name, cert.Name, cert.Issuer) <= 0 {
			continue
		}

		base := 60.0
		if cert.ExpiryDate != nil && cert.ExpiryDate.Before(in.Now) {
			base *= 0.5
		}

		total += base * issuerPrestige(cert.Issuer)
		matched++
	}

	if matched == 0 {
		return 0
	}
	return math.Min(total/float64(matched), 100)
}

var faangCompanies = []string{"google", "apple", "facebook", "amazon", "microsoft", "meta"}

var startupMarkers = []string{"startup", "inc", "labs", "ai"}

func companyTierBonus(company string) float64 {
	name := strings.ToLower(company)
	if containsAny(name, faangCompanies) {
		return 30
	}
	if containsAny(name, startupMarkers) {
		return 15
	}
	return 10
}

var highPrestigeIssuers = []string{"aws", "gcp", "azure", "oracle", "cisco", "linux"}

var mediumPrestigeIssuers = []string{"coursera", "udacity", "google", "microsoft"}

func issuerPrestige(issuer string) float64 {
	name := strings.ToLower(issuer)
	if containsAny(name, highPrestigeIssuers) {
		return 1.5
	}
	if containsAny(name, mediumPrestigeIssuers) {
		return 1.2
	}
	return 1.0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// yearsBetween counts years from start to end (or now for running
// entries), rounded to one decimal, never negative.
func yearsBetween(start, end *time.Time, isCurrent bool, now time.Time) float64 {
	if start == nil {
		return 0
	}
	until := now
	if end != nil && !isCurrent {
		until = *end
	}
	years := until.Sub(*start).Hours() / 24 / 365.25
	years = math.Round(years*10) / 10
	if years < 0 {
		return 0
	}
	return years
}

func verificationImpact(requests []verification.Request) VerificationImpact {
	totalCount := len(requests)
	verifiedCount := 0
	byMethod := map[string]MethodImpact{}

	for _, m := range []verification.Method{verification.MethodSelf, verification.MethodReferral, verification.MethodLink} {
		byMethod[string(m)] = MethodImpact{}
	}

	for _, r := range requests {
		mi := byMethod[string(r.Method)]
		mi.Total++
		if r.Status == verification.StatusApproved {
			mi.Verified++
			verifiedCount++
		}
		byMethod[string(r.Method)] = mi
	}

	for k, mi := range byMethod {
		if mi.Total > 0 {
			mi.Percentage = float64(mi.Verified) / float64(mi.Total) * 100
		}
		byMethod[k] = mi
	}

	rate := 0.0
	if totalCount > 0 {
		rate = float64(verifiedCount) / float64(totalCount) * 100
	}

	return VerificationImpact{
		TotalVerifications: totalCount,
		VerifiedCount:      verifiedCount,
		VerificationRate:   rate,
		ByMethod:           byMethod,
	}
}

// strengthsAndGaps picks the top and bottom three pillars by score.
// Below four pillars the two lists overlap; that is accepted output.
// Ties keep catalog order.
func strengthsAndGaps(breakdown []PillarBreakdown) ([]PillarScore, []PillarScore) {
	sorted := make([]PillarBreakdown, len(breakdown))
	copy(sorted, breakdown)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	top := len(sorted)
	if top > 3 {
		top = 3
	}
	strengths := make([]PillarScore, 0, top)
	for _, item := range sorted[:top] {
		strengths = append(strengths, PillarScore{Pillar: item.Name, Score: item.Score})
	}

	from := len(sorted) - 3
	if from < 0 {
		from = 0
	}
	gaps := make([]PillarScore, 0, len(sorted)-from)
	for _, item := range sorted[from:] {
		gaps = append(gaps, PillarScore{Pillar: item.Name, Score: item.Score})
	}

	return strengths, gaps
}

func recommendations(gaps []PillarScore, jobRoleName string) []Recommendation {
	out := make([]Recommendation, 0, len(gaps))
	for _, gap := range gaps {
		priority := "medium"
		if gap.Score < 30 {
			priority = "high"
		}
		out = append(out, Recommendation{
			Area:       gap.Pillar,
			Priority:   priority,
			Suggestion: recommendationText(gap.Pillar, jobRoleName),
		})
	}
	return out
}

func recommendationText(pillarName, jobRoleName string) string {
	switch pillarName {
	case "Technical Skills":
		return fmt.Sprintf("Strengthen your technical skills in areas required for %s. Consider online courses or side projects.", jobRoleName)
	case "Cognitive Abilities":
		return "Improve problem-solving and analytical thinking through coding challenges and algorithm practice."
	case "Behavioral Competencies":
		return "Develop communication, teamwork, and leadership skills through group projects and presentations."
	case "Domain Knowledge":
		return fmt.Sprintf("Increase your understanding of IT industry trends and best practices relevant to %s.", jobRoleName)
	default:
		return "Work on improving this area."
	}
}

func emptyResult(level CompanyLevel, multiplier float64) Result {
	return Result{
		IRIScore:  0,
		BaseScore: 0,
		Breakdown: []PillarBreakdown{},
		VerificationImpact: VerificationImpact{
			ByMethod: map[string]MethodImpact{},
		},
		CompanyLevel:      level,
		CompanyMultiplier: multiplier,
		Strengths:         []PillarScore{},
		Gaps:              []PillarScore{},
		Recommendations:   []Recommendation{},
		Error:             incompleteProfileMessage,
	}
}
