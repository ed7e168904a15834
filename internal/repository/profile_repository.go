package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"iri-backend/internal/database"
	"iri-backend/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileItemNotFound = errors.New("profile item not found")
)

// ProfileSkillInput names a skill by its catalog name; the skill row is
// created on first use.
type ProfileSkillInput struct {
	Name        string
	Proficiency *int16
	Source      profile.SkillSource
	IsPrimary   bool
}

// ProfileReplaceInput carries the full desired state of a profile. A
// replace swaps every child collection atomically.
type ProfileReplaceInput struct {
	FullName    string
	DateOfBirth *time.Time
	Location    string
	Headline    string
	Summary     string

	Educations     []profile.Education
	Experiences    []profile.Experience
	Projects       []profile.Project
	Certifications []profile.Certification
	Volunteering   []profile.Volunteering
	Skills         []ProfileSkillInput
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.StudentProfile, error)
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (profile.StudentProfile, error)
	Replace(ctx context.Context, userID uuid.UUID, in ProfileReplaceInput) (profile.StudentProfile, error)

	FindEducations(ctx context.Context, profileID uuid.UUID) ([]profile.Education, error)
	FindExperiences(ctx context.Context, profileID uuid.UUID) ([]profile.Experience, error)
	FindProjects(ctx context.Context, profileID uuid.UUID) ([]profile.Project, error)
	FindCertifications(ctx context.Context, profileID uuid.UUID) ([]profile.Certification, error)
	FindVolunteering(ctx context.Context, profileID uuid.UUID) ([]profile.Volunteering, error)
	FindSkills(ctx context.Context, profileID uuid.UUID) ([]profile.ProfileSkill, error)

	GetExperience(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.Experience, error)
	GetProject(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.Project, error)
	GetCertification(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.Certification, error)
	GetProfileSkill(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.ProfileSkill, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const selectProfile = `SELECT id, user_id, full_name, date_of_birth, location, headline, summary, created_at, updated_at
	FROM student_profiles`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.StudentProfile, error) {
	row := r.db.QueryRow(ctx, selectProfile+` WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (profile.StudentProfile, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return profile.StudentProfile{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO student_profiles (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, full_name, date_of_birth, location, headline, summary, created_at, updated_at`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Replace(ctx context.Context, userID uuid.UUID, in ProfileReplaceInput) (profile.StudentProfile, error) {
	var p profile.StudentProfile

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO student_profiles (user_id, full_name, date_of_birth, location, headline, summary)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (user_id) DO UPDATE SET
				full_name = EXCLUDED.full_name,
				date_of_birth = EXCLUDED.date_of_birth,
				location = EXCLUDED.location,
				headline = EXCLUDED.headline,
				summary = EXCLUDED.summary,
				updated_at = now()
			 RETURNING id, user_id, full_name, date_of_birth, location, headline, summary, created_at, updated_at`,
			userID, in.FullName, in.DateOfBirth, in.Location, in.Headline, in.Summary,
		)
		var err error
		p, err = scanProfile(row)
		if err != nil {
			return err
		}

		for _, table := range []string{"educations", "experiences", "projects", "certifications", "volunteering", "profile_skills"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE profile_id = $1`, p.ID); err != nil {
				return err
			}
		}

		for _, e := range in.Educations {
			if _, err := tx.Exec(ctx,
				`INSERT INTO educations (profile_id, institution, level, field_of_study, start_date, end_date, is_current, grade, description)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.ID, e.Institution, e.Level, e.FieldOfStudy, e.StartDate, e.EndDate, e.IsCurrent, e.Grade, e.Description,
			); err != nil {
				return err
			}
		}

		for _, e := range in.Experiences {
			if _, err := tx.Exec(ctx,
				`INSERT INTO experiences (profile_id, role_title, company, start_date, end_date, is_current, description, referral_name, referral_email)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.ID, e.RoleTitle, e.Company, e.StartDate, e.EndDate, e.IsCurrent, e.Description, e.ReferralName, e.ReferralEmail,
			); err != nil {
				return err
			}
		}

		for _, pr := range in.Projects {
			if _, err := tx.Exec(ctx,
				`INSERT INTO projects (profile_id, title, organization, start_date, end_date, contribution, description, technologies, tools, referral_name, referral_email, live_link, github_link)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				p.ID, pr.Title, pr.Organization, pr.StartDate, pr.EndDate, pr.Contribution, pr.Description, pr.Technologies, pr.Tools, pr.ReferralName, pr.ReferralEmail, pr.LiveLink, pr.GithubLink,
			); err != nil {
				return err
			}
		}

		for _, c := range in.Certifications {
			if _, err := tx.Exec(ctx,
				`INSERT INTO certifications (profile_id, name, issuer, issue_date, expiry_date, credential_url)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				p.ID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate, c.CredentialURL,
			); err != nil {
				return err
			}
		}

		for _, v := range in.Volunteering {
			if _, err := tx.Exec(ctx,
				`INSERT INTO volunteering (profile_id, organization, role, start_date, end_date, description)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				p.ID, v.Organization, v.Role, v.StartDate, v.EndDate, v.Description,
			); err != nil {
				return err
			}
		}

		for _, s := range in.Skills {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				continue
			}

			var skillID uuid.UUID
			row := tx.QueryRow(ctx,
				`INSERT INTO skills (name) VALUES ($1)
				 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				 RETURNING id`,
				name,
			)
			if err := row.Scan(&skillID); err != nil {
				return err
			}

			source := s.Source
			if !profile.ValidSkillSource(source) {
				source = profile.SourceManual
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO profile_skills (profile_id, skill_id, source, proficiency, is_primary)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (profile_id, skill_id) DO NOTHING`,
				p.ID, skillID, source, s.Proficiency, s.IsPrimary,
			); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return profile.StudentProfile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) FindEducations(ctx context.Context, profileID uuid.UUID) ([]profile.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, institution, level, field_of_study, start_date, end_date, is_current, grade, description
		 FROM educations WHERE profile_id = $1 ORDER BY start_date DESC NULLS LAST`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Education, 0)
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Institution, &e.Level, &e.FieldOfStudy, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.Grade, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectExperience = `SELECT id, profile_id, role_title, company, start_date, end_date, is_current, description, referral_name, referral_email
	FROM experiences`

func (r *PostgresProfileRepository) FindExperiences(ctx context.Context, profileID uuid.UUID) ([]profile.Experience, error) {
	rows, err := r.db.Query(ctx,
		selectExperience+` WHERE profile_id = $1 ORDER BY start_date DESC NULLS LAST`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Experience, 0)
	for rows.Next() {
		var e profile.Experience
		if err := scanExperience(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectProject = `SELECT id, profile_id, title, organization, start_date, end_date, contribution, description, technologies, tools, referral_name, referral_email, live_link, github_link
	FROM projects`

func (r *PostgresProfileRepository) FindProjects(ctx context.Context, profileID uuid.UUID) ([]profile.Project, error) {
	rows, err := r.db.Query(ctx,
		selectProject+` WHERE profile_id = $1 ORDER BY start_date DESC NULLS LAST`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Project, 0)
	for rows.Next() {
		var pr profile.Project
		if err := scanProject(rows, &pr); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectCertification = `SELECT id, profile_id, name, issuer, issue_date, expiry_date, credential_url
	FROM certifications`

func (r *PostgresProfileRepository) FindCertifications(ctx context.Context, profileID uuid.UUID) ([]profile.Certification, error) {
	rows, err := r.db.Query(ctx,
		selectCertification+` WHERE profile_id = $1 ORDER BY issue_date DESC NULLS LAST`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Certification, 0)
	for rows.Next() {
		var c profile.Certification
		if err := scanCertification(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) FindVolunteering(ctx context.Context, profileID uuid.UUID) ([]profile.Volunteering, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, organization, role, start_date, end_date, description
		 FROM volunteering WHERE profile_id = $1 ORDER BY start_date DESC NULLS LAST`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Volunteering, 0)
	for rows.Next() {
		var v profile.Volunteering
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.Organization, &v.Role, &v.StartDate, &v.EndDate, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectProfileSkill = `SELECT ps.id, ps.profile_id, ps.skill_id, s.name, s.sub_pillar_id, s.pillar_id, ps.source, ps.proficiency, ps.verification_score, ps.is_primary
	FROM profile_skills ps
	JOIN skills s ON s.id = ps.skill_id`

func (r *PostgresProfileRepository) FindSkills(ctx context.Context, profileID uuid.UUID) ([]profile.ProfileSkill, error) {
	rows, err := r.db.Query(ctx,
		selectProfileSkill+` WHERE ps.profile_id = $1 ORDER BY s.name ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.ProfileSkill, 0)
	for rows.Next() {
		var ps profile.ProfileSkill
		if err := scanProfileSkill(rows, &ps); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) GetExperience(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.Experience, error) {
	var e profile.Experience
	row := r.db.QueryRow(ctx, selectExperience+` WHERE profile_id = $1 AND id = $2`, profileID, id)
	if err := scanExperience(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Experience{}, ErrProfileItemNotFound
		}
		return profile.Experience{}, err
	}
	return e, nil
}

func (r *PostgresProfileRepository) GetProject(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.Project, error) {
	var pr profile.Project
	row := r.db.QueryRow(ctx, selectProject+` WHERE profile_id = $1 AND id = $2`, profileID, id)
	if err := scanProject(row, &pr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Project{}, ErrProfileItemNotFound
		}
		return profile.Project{}, err
	}
	return pr, nil
}

func (r *PostgresProfileRepository) GetCertification(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.Certification, error) {
	var c profile.Certification
	row := r.db.QueryRow(ctx, selectCertification+` WHERE profile_id = $1 AND id = $2`, profileID, id)
	if err := scanCertification(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Certification{}, ErrProfileItemNotFound
		}
		return profile.Certification{}, err
	}
	return c, nil
}

func (r *PostgresProfileRepository) GetProfileSkill(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.ProfileSkill, error) {
	var ps profile.ProfileSkill
	row := r.db.QueryRow(ctx, selectProfileSkill+` WHERE ps.profile_id = $1 AND ps.id = $2`, profileID, id)
	if err := scanProfileSkill(row, &ps); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.ProfileSkill{}, ErrProfileItemNotFound
		}
		return profile.ProfileSkill{}, err
	}
	return ps, nil
}

func scanProfile(row database.Row) (profile.StudentProfile, error) {
	var p profile.StudentProfile
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.DateOfBirth, &p.Location, &p.Headline, &p.Summary, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.StudentProfile{}, ErrProfileNotFound
		}
		return profile.StudentProfile{}, err
	}
	return p, nil
}

func scanExperience(row database.Row, e *profile.Experience) error {
	return row.Scan(&e.ID, &e.ProfileID, &e.RoleTitle, &e.Company, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description, &e.ReferralName, &e.ReferralEmail)
}

func scanProject(row database.Row, pr *profile.Project) error {
	return row.Scan(&pr.ID, &pr.ProfileID, &pr.Title, &pr.Organization, &pr.StartDate, &pr.EndDate, &pr.Contribution, &pr.Description, &pr.Technologies, &pr.Tools, &pr.ReferralName, &pr.ReferralEmail, &pr.LiveLink, &pr.GithubLink)
}

func scanCertification(row database.Row, c *profile.Certification) error {
	return row.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Issuer, &c.IssueDate, &c.ExpiryDate, &c.CredentialURL)
}

func scanProfileSkill(row database.Row, ps *profile.ProfileSkill) error {
	return row.Scan(&ps.ID, &ps.ProfileID, &ps.SkillID, &ps.SkillName, &ps.SubPillarID, &ps.PillarID, &ps.Source, &ps.Proficiency, &ps.VerificationScore, &ps.IsPrimary)
}
