package services

import (
	"encoding/json"
	"time"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment-vendor event names we act on. Everything else is recorded and
// ignored.
const (
	eventInvoicePaid         = "invoice.paid"
	eventInvoiceFailed       = "invoice.payment_failed"
	eventSubscriptionDeleted = "customer.subscription.deleted"
)

type SubscriptionService interface {
	ListPlans(db *gorm.DB) ([]dto.PlanResponse, error)
	GetMySubscription(db *gorm.DB, userID string) (*dto.SubscriptionResponse, error)
	HandlePaymentWebhook(db *gorm.DB, req *dto.PaymentWebhookRequest) error
}

type SubscriptionServiceImpl struct {
	subRepo    repositories.SubscriptionRepository
	onboarding OnboardingService
	planLimits models.PlanLimits
}

func NewSubscriptionService(
	subRepo repositories.SubscriptionRepository,
	onboardingSvc OnboardingService,
	planLimits models.PlanLimits,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subRepo:    subRepo,
		onboarding: onboardingSvc,
		planLimits: planLimits,
	}
}

func (s *SubscriptionServiceImpl) ListPlans(db *gorm.DB) ([]dto.PlanResponse, error) {
	plans, err := s.subRepo.ListPlans(db)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.PlanResponse{
			Plan:       p.Plan,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Currency:   p.Currency,
			Interval:   p.Interval,
			PhotoLimit: s.planLimits.PhotoLimit(p.Plan),
		})
	}
	return out, nil
}

func (s *SubscriptionServiceImpl) GetMySubscription(db *gorm.DB, userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subRepo.FindActiveByUserID(db, userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrSubscriptionNotFound) {
			// Free tier. The response reflects that rather than erroring.
			return &dto.SubscriptionResponse{
				Plan:   models.PlanFree,
				Status: models.SubscriptionActive,
			}, nil
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.SubscriptionResponse{
		ID:               sub.ID,
		Plan:             sub.Plan,
		Status:           sub.Status,
		TrialEnd:         sub.TrialEnd,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	}, nil
}

func (s *SubscriptionServiceImpl) HandlePaymentWebhook(db *gorm.DB, req *dto.PaymentWebhookRequest) error {
	sub, err := s.subRepo.FindByStripeID(db, req.StripeSubscriptionID)
	if err != nil {
		logger.Warn("webhook for unknown subscription",
			"stripe_subscription_id", req.StripeSubscriptionID, "event", req.EventType)
		return appErrors.NewNotFoundError("Unknown subscription")
	}

	var payload datatypes.JSON
	if req.Payload != nil {
		if raw, err := json.Marshal(req.Payload); err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		event := &models.PaymentEvent{
			UserID:         sub.UserID,
			SubscriptionID: sub.ID,
			EventType:      req.EventType,
			AmountCents:    req.AmountCents,
			Payload:        payload,
		}

		switch req.EventType {
		case eventInvoicePaid:
			event.Status = models.PaymentStatusPaid
			if err := s.subRepo.UpdateStatus(tx, sub.ID, models.SubscriptionActive); err != nil {
				return err
			}
			if req.PeriodEnd > 0 {
				periodEnd := time.Unix(req.PeriodEnd, 0).UTC()
				if err := tx.Model(&models.Subscription{}).
					Where("id = ?", sub.ID).
					Update("current_period_end", periodEnd).Error; err != nil {
					return err
				}
			}
			if err := s.onboarding.Apply(tx, sub.UserID, onboarding.EventPaymentSuccess); err != nil {
				return err
			}

		case eventInvoiceFailed:
			event.Status = models.PaymentStatusFailed
			if err := s.subRepo.UpdateStatus(tx, sub.ID, models.SubscriptionPastDue); err != nil {
				return err
			}
			if err := s.onboarding.Apply(tx, sub.UserID, onboarding.EventPaymentFailed); err != nil {
				return err
			}
			if err := s.onboarding.SyncPublication(tx, sub.UserID); err != nil {
				return err
			}

		case eventSubscriptionDeleted:
			event.Status = models.PaymentStatusPending
			if err := s.subRepo.UpdateStatus(tx, sub.ID, models.SubscriptionCanceled); err != nil {
				return err
			}
			if err := s.onboarding.SyncPublication(tx, sub.UserID); err != nil {
				return err
			}

		default:
			event.Status = models.PaymentStatusPending
			logger.Info("payment event recorded without action", "event", req.EventType)
		}

		now := time.Now().UTC()
		event.ProcessedAt = &now
		return s.subRepo.RecordPaymentEvent(tx, event)
	})
}
