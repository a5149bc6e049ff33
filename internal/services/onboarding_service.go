package services

import (
	"strings"
	"time"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"gorm.io/gorm"
)

// OnboardingService drives profiles through the publication pipeline. Every
// stage change goes through the transition table; services never assign a
// stage directly.
type OnboardingService interface {
	State(db *gorm.DB, userID string) (*dto.OnboardingStateResponse, error)
	SelectPlan(db *gorm.DB, userID string, plan models.SubscriptionPlan) (*dto.OnboardingStateResponse, error)
	SubmitForReview(db *gorm.DB, userID string) (*dto.OnboardingStateResponse, error)
	HandleIdentityResult(db *gorm.DB, userID string, verified bool) error

	// Apply advances the profile's stage for an event. Events whose
	// (stage, event) pair is not in the transition table are a no-op.
	Apply(db *gorm.DB, userID string, event onboarding.Event) error

	// SyncPublication unpublishes a live profile that no longer meets the
	// publication gate. Called after anything that can invalidate it.
	SyncPublication(db *gorm.DB, userID string) error
}

type OnboardingServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	subRepo     repositories.SubscriptionRepository
}

func NewOnboardingService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	subRepo repositories.SubscriptionRepository,
) OnboardingService {
	return &OnboardingServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		subRepo:     subRepo,
	}
}

// snapshot bundles everything the transition guards and gates consult.
type pipelineSnapshot struct {
	user    *models.User
	profile *models.Profile
	sub     *models.Subscription // nil on the free tier
	counts  onboarding.RelationCounts
}

func (s *OnboardingServiceImpl) snapshot(db *gorm.DB, userID string) (*pipelineSnapshot, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, appErrors.ErrUserNotFound
	}
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}
	sub, err := s.subRepo.FindActiveByUserID(db, userID)
	if err != nil {
		if !appErrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, appErrors.InternalError(err)
		}
		sub = nil
	}
	counts, err := s.profileRepo.RelationCounts(db, profile)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return &pipelineSnapshot{user: user, profile: profile, sub: sub, counts: counts}, nil
}

func profileFieldsComplete(p *models.Profile) bool {
	hasContact := p.PhonePublicE164 != "" || p.WhatsappE164 != "" || p.PublicEmail != ""
	return strings.TrimSpace(p.DisplayName) != "" &&
		len(p.BioShort) >= onboarding.MinBioLength &&
		p.CitySlug != "" &&
		hasContact
}

func (snap *pipelineSnapshot) transitionContext() onboarding.TransitionContext {
	plan := models.PlanFree
	if snap.sub != nil {
		plan = snap.sub.Plan
	}
	checklist := onboarding.CanSubmitForReview(snap.profile, snap.user, snap.sub, snap.counts)
	return onboarding.TransitionContext{
		Plan:              plan,
		ProfileComplete:   profileFieldsComplete(snap.profile),
		HasApprovedPhotos: snap.counts.ApprovedPhotos > 0,
		CanSubmit:         checklist.Valid,
		AutoModeration:    snap.profile.AutoModeration,
		HasPaidPlan:       plan.IsPaid(),
	}
}

func (snap *pipelineSnapshot) stateResponse() *dto.OnboardingStateResponse {
	plan := models.PlanFree
	if snap.sub != nil {
		plan = snap.sub.Plan
	}
	stage := snap.profile.OnboardingStage
	return &dto.OnboardingStateResponse{
		Stage:     stage,
		Message:   onboarding.StageMessage(stage),
		Progress:  onboarding.CalculateProgress(stage, plan.IsPaid()),
		Checklist: onboarding.CanSubmitForReview(snap.profile, snap.user, snap.sub, snap.counts),
	}
}

func (s *OnboardingServiceImpl) State(db *gorm.DB, userID string) (*dto.OnboardingStateResponse, error) {
	snap, err := s.snapshot(db, userID)
	if err != nil {
		return nil, err
	}
	return snap.stateResponse(), nil
}

// advance runs one event through the transition table and persists the
// resulting stage. Returns the snapshot so callers can build a response
// without re-reading.
func (s *OnboardingServiceImpl) advance(db *gorm.DB, snap *pipelineSnapshot, event onboarding.Event) (bool, error) {
	next, ok := onboarding.NextStage(snap.profile.OnboardingStage, event, snap.transitionContext())
	if !ok {
		return false, nil
	}
	if next == snap.profile.OnboardingStage {
		return true, nil
	}
	if err := s.profileRepo.UpdateStage(db, snap.profile.ID, next); err != nil {
		return false, appErrors.InternalError(err)
	}
	logger.Info("onboarding stage changed",
		"profile_id", snap.profile.ID,
		"from", snap.profile.OnboardingStage,
		"to", next,
		"event", event,
	)
	snap.profile.OnboardingStage = next
	return true, nil
}

func (s *OnboardingServiceImpl) Apply(db *gorm.DB, userID string, event onboarding.Event) error {
	snap, err := s.snapshot(db, userID)
	if err != nil {
		return err
	}
	_, err = s.advance(db, snap, event)
	return err
}

func (s *OnboardingServiceImpl) SelectPlan(db *gorm.DB, userID string, plan models.SubscriptionPlan) (*dto.OnboardingStateResponse, error) {
	snap, err := s.snapshot(db, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.subRepo.FindPlan(db, plan); err != nil {
		return nil, appErrors.ErrPlanNotFound
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if plan.IsPaid() {
			sub := &models.Subscription{
				UserID: userID,
				Plan:   plan,
				Status: models.SubscriptionTrialing,
			}
			if err := s.subRepo.Activate(tx, sub); err != nil {
				return err
			}
			snap.sub = sub
		} else if snap.sub != nil {
			// Downgrade to free: the active paid row is canceled.
			if err := s.subRepo.UpdateStatus(tx, snap.sub.ID, models.SubscriptionCanceled); err != nil {
				return err
			}
			snap.sub = nil
		}

		ok, err := s.advance(tx, snap, onboarding.EventSelectPlan)
		if err != nil {
			return err
		}
		if !ok {
			return appErrors.ErrIllegalTransition
		}
		return nil
	})
	if err != nil {
		if appErr, isApp := err.(*appErrors.AppError); isApp {
			return nil, appErr
		}
		return nil, appErrors.InternalError(err)
	}

	return snap.stateResponse(), nil
}

func (s *OnboardingServiceImpl) SubmitForReview(db *gorm.DB, userID string) (*dto.OnboardingStateResponse, error) {
	snap, err := s.snapshot(db, userID)
	if err != nil {
		return nil, err
	}

	checklist := onboarding.CanSubmitForReview(snap.profile, snap.user, snap.sub, snap.counts)
	if !checklist.Valid {
		return nil, appErrors.ErrChecklistIncomplete.WithDetails(checklist.Missing)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.advance(tx, snap, onboarding.EventSubmitForReview)
		if err != nil {
			return err
		}
		if !ok {
			return appErrors.ErrIllegalTransition
		}
		now := time.Now().UTC()
		if err := s.profileRepo.MarkSubmitted(tx, snap.profile.ID, now); err != nil {
			return err
		}
		snap.profile.SubmittedAt = &now
		return s.profileRepo.SetAdminStatus(tx, snap.profile.ID, models.AdminPending, "")
	})
	if err != nil {
		if appErr, isApp := err.(*appErrors.AppError); isApp {
			return nil, appErr
		}
		return nil, appErrors.InternalError(err)
	}

	return snap.stateResponse(), nil
}

func (s *OnboardingServiceImpl) HandleIdentityResult(db *gorm.DB, userID string, verified bool) error {
	status := models.IdentityFailed
	event := onboarding.EventIdentityFailed
	if verified {
		status = models.IdentityVerified
		event = onboarding.EventIdentityVerified
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateIdentityStatus(tx, userID, status); err != nil {
			return err
		}
		return s.Apply(tx, userID, event)
	})
}

func (s *OnboardingServiceImpl) SyncPublication(db *gorm.DB, userID string) error {
	snap, err := s.snapshot(db, userID)
	if err != nil {
		return err
	}
	if snap.profile.PublicationStatus != models.PublicationPublic {
		return nil
	}
	if onboarding.CanPublishProfile(snap.profile, snap.user, snap.sub, snap.counts) {
		return nil
	}
	logger.Warn("unpublishing profile that no longer meets the gate",
		"profile_id", snap.profile.ID, "user_id", userID)
	return s.profileRepo.SetPublication(db, snap.profile.ID, models.PublicationPrivate)
}
