package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"iri-backend/internal/domain/profile"
	"iri-backend/internal/domain/quiz"
	"iri-backend/internal/domain/verification"
	"iri-backend/internal/pkg/mailer"
	"iri-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	selfQuizTTL        = time.Hour
	referralTTL        = 7 * 24 * time.Hour
	statusRecentLimit  = 5
	quizPassedMessage  = "Quiz passed! Verification approved."
	quizFailedMessage  = "Score too low. Please try again."
	linkOKMessage      = "Link verified successfully!"
	linkPendingMessage = "Link verification pending review."
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrItemNotFound         = errors.New("profile item not found")
	ErrVerificationNotFound = errors.New("verification request not found or already completed")
	ErrVerificationExpired  = errors.New("verification has expired")
	ErrInvalidTarget        = errors.New("invalid item type")
	ErrEmailDeliveryFailed  = errors.New("failed to send verification email")
)

type SelfVerificationResult struct {
	VerificationID   uuid.UUID       `json:"verification_id"`
	Questions        []quiz.Question `json:"questions"`
	ExpiresInMinutes int             `json:"expires_in_minutes"`
}

type QuizSubmissionResult struct {
	VerificationID uuid.UUID           `json:"verification_id"`
	Score          float64             `json:"score"`
	Status         verification.Status `json:"status"`
	Message        string              `json:"message"`
}

type ReferralVerificationResult struct {
	VerificationID uuid.UUID           `json:"verification_id"`
	Status         verification.Status `json:"status"`
	Message        string              `json:"message"`
}

type LinkVerificationResult struct {
	VerificationID uuid.UUID           `json:"verification_id"`
	Score          float64             `json:"score"`
	Status         verification.Status `json:"status"`
	Message        string              `json:"message"`
}

type VerificationStatusSummary struct {
	Total    int                    `json:"total_verifications"`
	Pending  int                    `json:"pending"`
	Approved int                    `json:"approved"`
	Rejected int                    `json:"rejected"`
	ByMethod map[string]int         `json:"by_method"`
	Recent   []verification.Request `json:"recent_verifications"`
}

type VerificationUsecase interface {
	RequestSelf(ctx context.Context, userID uuid.UUID, target verification.Target) (SelfVerificationResult, error)
	SubmitQuiz(ctx context.Context, userID uuid.UUID, verificationID uuid.UUID, answers map[string]string) (QuizSubmissionResult, error)
	RequestReferral(ctx context.Context, userID uuid.UUID, target verification.Target, referralName, referralEmail, message string) (ReferralVerificationResult, error)
	RequestLink(ctx context.Context, userID uuid.UUID, target verification.Target, evidenceURL string) (LinkVerificationResult, error)
	Status(ctx context.Context, userID uuid.UUID) (VerificationStatusSummary, error)
	List(ctx context.Context, userID uuid.UUID) ([]verification.Request, error)
}

type Verification struct {
	profiles      repository.ProfileRepository
	verifications repository.VerificationRepository
	mail          mailer.Mailer
	cache         Cache
	notifier      Notifier
	frontendURL   string
	logger        *log.Logger

	now func() time.Time
}

func NewVerificationUsecase(
	profiles repository.ProfileRepository,
	verifications repository.VerificationRepository,
	mail mailer.Mailer,
	cache Cache,
	notifier Notifier,
	frontendURL string,
	logger *log.Logger,
) *Verification {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Verification{
		profiles:      profiles,
		verifications: verifications,
		mail:          mail,
		cache:         cache,
		notifier:      notifier,
		frontendURL:   frontendURL,
		logger:        logger,
		now:           time.Now,
	}
}

func (u *Verification) RequestSelf(ctx context.Context, userID uuid.UUID, target verification.Target) (SelfVerificationResult, error) {
	if !target.Type.QuizEligible() {
		return SelfVerificationResult{}, ErrInvalidTarget
	}

	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return SelfVerificationResult{}, err
	}

	questions, err := u.quizFor(ctx, p.ID, target)
	if err != nil {
		return SelfVerificationResult{}, err
	}

	expiresAt := u.now().Add(selfQuizTTL)
	req, err := u.verifications.Create(ctx, verification.Request{
		ProfileID: p.ID,
		Target:    target,
		Method:    verification.MethodSelf,
		Status:    verification.StatusPending,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		return SelfVerificationResult{}, ErrInternal
	}

	return SelfVerificationResult{
		VerificationID:   req.ID,
		Questions:        questions,
		ExpiresInMinutes: int(selfQuizTTL.Minutes()),
	}, nil
}

func (u *Verification) SubmitQuiz(ctx context.Context, userID uuid.UUID, verificationID uuid.UUID, answers map[string]string) (QuizSubmissionResult, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return QuizSubmissionResult{}, err
	}

	req, err := u.verifications.GetByID(ctx, p.ID, verificationID)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return QuizSubmissionResult{}, ErrVerificationNotFound
		}
		return QuizSubmissionResult{}, ErrInternal
	}
	if req.Method != verification.MethodSelf || req.Status != verification.StatusPending {
		return QuizSubmissionResult{}, ErrVerificationNotFound
	}

	now := u.now()
	if req.ExpiredAt(now) {
		_, err := u.verifications.TransitionStatus(ctx, req.ID, verification.StatusPending, verification.StatusExpired, 0, nil)
		if err != nil {
			return QuizSubmissionResult{}, ErrInternal
		}
		return QuizSubmissionResult{}, ErrVerificationExpired
	}

	// Questions are regenerated from the item rather than stored with
	// the request; the templates are deterministic per item.
	questions, err := u.quizFor(ctx, p.ID, req.Target)
	if err != nil {
		return QuizSubmissionResult{}, err
	}

	score := quiz.Evaluate(questions, answers)
	status := verification.StatusRejected
	message := quizFailedMessage
	if quiz.Passed(score) {
		status = verification.StatusApproved
		message = quizPassedMessage
	}

	completedAt := now
	moved, err := u.verifications.TransitionStatus(ctx, req.ID, verification.StatusPending, status, score, &completedAt)
	if err != nil {
		return QuizSubmissionResult{}, ErrInternal
	}
	if !moved {
		return QuizSubmissionResult{}, ErrVerificationNotFound
	}

	_ = u.cache.InvalidateReadiness(ctx, userID)
	u.notifier.Notify(userID, EventVerificationUpdated, map[string]any{
		"verification_id": req.ID,
		"status":          status,
		"score":           score,
	})

	return QuizSubmissionResult{
		VerificationID: req.ID,
		Score:          score,
		Status:         status,
		Message:        message,
	}, nil
}

func (u *Verification) RequestReferral(ctx context.Context, userID uuid.UUID, target verification.Target, referralName, referralEmail, message string) (ReferralVerificationResult, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return ReferralVerificationResult{}, err
	}

	itemLabel, err := u.resolveTargetLabel(ctx, p.ID, target)
	if err != nil {
		return ReferralVerificationResult{}, err
	}

	token, err := generateToken()
	if err != nil {
		return ReferralVerificationResult{}, ErrInternal
	}

	expiresAt := u.now().Add(referralTTL)
	req, err := u.verifications.Create(ctx, verification.Request{
		ProfileID:     p.ID,
		Target:        target,
		Method:        verification.MethodReferral,
		Status:        verification.StatusPending,
		ReferralName:  referralName,
		ReferralEmail: referralEmail,
		Token:         token,
		ExpiresAt:     &expiresAt,
	})
	if err != nil {
		return ReferralVerificationResult{}, ErrInternal
	}

	subject, body := mailer.ReferralEmail(u.frontendURL, referralName, p.FullName, itemLabel, token)
	if message != "" {
		body += "\n" + message + "\n"
	}
	if err := u.mail.Send(ctx, referralEmail, subject, body); err != nil {
		// The request row stays; the caller may retry delivery.
		if u.logger != nil {
			u.logger.Printf("Verification | referral email failed id=%s err=%v", req.ID, err)
		}
		return ReferralVerificationResult{}, ErrEmailDeliveryFailed
	}

	return ReferralVerificationResult{
		VerificationID: req.ID,
		Status:         verification.StatusPending,
		Message:        fmt.Sprintf("Verification email sent to %s", referralEmail),
	}, nil
}

func (u *Verification) RequestLink(ctx context.Context, userID uuid.UUID, target verification.Target, evidenceURL string) (LinkVerificationResult, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return LinkVerificationResult{}, err
	}

	if _, err := u.resolveTargetLabel(ctx, p.ID, target); err != nil {
		return LinkVerificationResult{}, err
	}

	score := verification.ScoreEvidenceURL(evidenceURL)

	status := verification.StatusPending
	message := linkPendingMessage
	var completedAt *time.Time
	if score >= verification.LinkApprovalThreshold {
		status = verification.StatusApproved
		message = linkOKMessage
		now := u.now()
		completedAt = &now
	}

	req, err := u.verifications.Create(ctx, verification.Request{
		ProfileID:   p.ID,
		Target:      target,
		Method:      verification.MethodLink,
		Status:      status,
		Score:       score,
		EvidenceURL: evidenceURL,
		CompletedAt: completedAt,
	})
	if err != nil {
		return LinkVerificationResult{}, ErrInternal
	}

	if status == verification.StatusApproved {
		_ = u.cache.InvalidateReadiness(ctx, userID)
		u.notifier.Notify(userID, EventVerificationUpdated, map[string]any{
			"verification_id": req.ID,
			"status":          status,
			"score":           score,
		})
	}

	return LinkVerificationResult{
		VerificationID: req.ID,
		Score:          score,
		Status:         status,
		Message:        message,
	}, nil
}

func (u *Verification) Status(ctx context.Context, userID uuid.UUID) (VerificationStatusSummary, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return VerificationStatusSummary{}, err
	}

	all, err := u.verifications.ListByProfile(ctx, p.ID, 0)
	if err != nil {
		return VerificationStatusSummary{}, ErrInternal
	}

	summary := VerificationStatusSummary{
		Total: len(all),
		ByMethod: map[string]int{
			string(verification.MethodSelf):     0,
			string(verification.MethodReferral): 0,
			string(verification.MethodLink):     0,
		},
		Recent: all,
	}
	for _, req := range all {
		switch req.Status {
		case verification.StatusPending:
			summary.Pending++
		case verification.StatusApproved:
			summary.Approved++
		case verification.StatusRejected:
			summary.Rejected++
		}
		summary.ByMethod[string(req.Method)]++
	}
	if len(summary.Recent) > statusRecentLimit {
		summary.Recent = summary.Recent[:statusRecentLimit]
	}
	return summary, nil
}

func (u *Verification) List(ctx context.Context, userID uuid.UUID) ([]verification.Request, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := u.verifications.ListByProfile(ctx, p.ID, 0)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Verification) profileOf(ctx context.Context, userID uuid.UUID) (profile.StudentProfile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.StudentProfile{}, ErrProfileNotFound
		}
		return profile.StudentProfile{}, ErrInternal
	}
	return p, nil
}

// quizFor loads the owned item and renders its question set.
func (u *Verification) quizFor(ctx context.Context, profileID uuid.UUID, target verification.Target) ([]quiz.Question, error) {
	switch target.Type {
	case verification.TargetSkill:
		ps, err := u.profiles.GetProfileSkill(ctx, profileID, target.ID)
		if err != nil {
			return nil, mapItemErr(err)
		}
		return quiz.ForSkill(ps.SkillName), nil
	case verification.TargetExperience:
		exp, err := u.profiles.GetExperience(ctx, profileID, target.ID)
		if err != nil {
			return nil, mapItemErr(err)
		}
		return quiz.ForExperience(exp.Company), nil
	case verification.TargetProject:
		pr, err := u.profiles.GetProject(ctx, profileID, target.ID)
		if err != nil {
			return nil, mapItemErr(err)
		}
		return quiz.ForProject(pr.Title), nil
	default:
		return nil, ErrInvalidTarget
	}
}

// resolveTargetLabel confirms the target exists and belongs to the
// profile, and returns a short label for email copy.
func (u *Verification) resolveTargetLabel(ctx context.Context, profileID uuid.UUID, target verification.Target) (string, error) {
	switch target.Type {
	case verification.TargetSkill:
		ps, err := u.profiles.GetProfileSkill(ctx, profileID, target.ID)
		if err != nil {
			return "", mapItemErr(err)
		}
		return "skill " + ps.SkillName, nil
	case verification.TargetExperience:
		exp, err := u.profiles.GetExperience(ctx, profileID, target.ID)
		if err != nil {
			return "", mapItemErr(err)
		}
		return "experience at " + exp.Company, nil
	case verification.TargetProject:
		pr, err := u.profiles.GetProject(ctx, profileID, target.ID)
		if err != nil {
			return "", mapItemErr(err)
		}
		return "project " + pr.Title, nil
	case verification.TargetCertification:
		cert, err := u.profiles.GetCertification(ctx, profileID, target.ID)
		if err != nil {
			return "", mapItemErr(err)
		}
		return "certification " + cert.Name, nil
	default:
		return "", ErrInvalidTarget
	}
}

func mapItemErr(err error) error {
	if errors.Is(err, repository.ErrProfileItemNotFound) {
		return ErrItemNotFound
	}
	return ErrInternal
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
