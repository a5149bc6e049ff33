package onboarding

import (
	"testing"
	"time"

	"masseurmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// publishableFixture returns a snapshot that satisfies every gate condition.
// Tests break one condition at a time against it.
func publishableFixture() (*models.Profile, *models.User, *models.Subscription, RelationCounts) {
	profile := &models.Profile{
		DisplayName:       "Alex Rivera",
		CitySlug:          "austin-tx",
		PhonePublicE164:   "+15125551234",
		IncallEnabled:     true,
		OutcallEnabled:    true,
		AutoModeration:    models.ModerationAutoPassed,
		AdminStatus:       models.AdminApproved,
		PublicationStatus: models.PublicationPrivate,
	}
	user := &models.User{IdentityStatus: models.IdentityVerified}
	sub := &models.Subscription{Plan: models.PlanPro, Status: models.SubscriptionActive}
	counts := RelationCounts{
		ApprovedPhotos: 2,
		Languages:      1,
		Services:       3,
		Setups:         1,
		IncallRates:    2,
		OutcallRates:   1,
	}
	return profile, user, sub, counts
}

func TestCanPublishProfile_AllConditionsMet(t *testing.T) {
	t.Parallel()

	profile, user, sub, counts := publishableFixture()
	assert.True(t, CanPublishProfile(profile, user, sub, counts))
}

func TestCanPublishProfile_FreeTierNeedsNoSubscription(t *testing.T) {
	t.Parallel()

	profile, user, _, counts := publishableFixture()
	assert.True(t, CanPublishProfile(profile, user, nil, counts))
}

func TestCanPublishProfile_EachConditionTogglesIndependently(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts)
	}{
		{"identity not verified", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			u.IdentityStatus = models.IdentityPending
		}},
		{"moderation not passed", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			p.AutoModeration = models.ModerationAutoFlagged
		}},
		{"admin not approved", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			p.AdminStatus = models.AdminPending
		}},
		{"subscription lapsed", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			s.Status = models.SubscriptionPastDue
		}},
		{"no approved photo", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			c.ApprovedPhotos = 0
		}},
		{"missing display name", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			p.DisplayName = ""
		}},
		{"missing city", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			p.CitySlug = ""
		}},
		{"missing phone", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			p.PhonePublicE164 = ""
		}},
		{"no languages", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			c.Languages = 0
		}},
		{"no services", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			c.Services = 0
		}},
		{"no setups", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			c.Setups = 0
		}},
		{"incall enabled without incall rate", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			c.IncallRates = 0
		}},
		{"outcall enabled without outcall rate", func(p *models.Profile, u *models.User, s *models.Subscription, c *RelationCounts) {
			c.OutcallRates = 0
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			profile, user, sub, counts := publishableFixture()
			tc.mutate(profile, user, sub, &counts)
			assert.False(t, CanPublishProfile(profile, user, sub, counts))
		})
	}
}

func TestCanPublishProfile_DisabledContextNeedsNoRate(t *testing.T) {
	t.Parallel()

	profile, user, sub, counts := publishableFixture()
	profile.OutcallEnabled = false
	counts.OutcallRates = 0
	assert.True(t, CanPublishProfile(profile, user, sub, counts))
}

func TestCanSubmitForReview_CollectsEveryGap(t *testing.T) {
	t.Parallel()

	profile := &models.Profile{IncallEnabled: true}
	user := &models.User{IdentityStatus: models.IdentityPending}
	sub := &models.Subscription{Status: models.SubscriptionCanceled}

	checklist := CanSubmitForReview(profile, user, sub, RelationCounts{})
	assert.False(t, checklist.Valid)

	assert.Contains(t, checklist.Missing, "Identity verification required")
	assert.Contains(t, checklist.Missing, "Content must pass automatic moderation")
	assert.Contains(t, checklist.Missing, "Display name required")
	assert.Contains(t, checklist.Missing, "City required")
	assert.Contains(t, checklist.Missing, "Phone number required")
	assert.Contains(t, checklist.Missing, "At least one language required")
	assert.Contains(t, checklist.Missing, "At least one service required")
	assert.Contains(t, checklist.Missing, "At least one setup required")
	assert.Contains(t, checklist.Missing, "At least one incall rate required")
	assert.Contains(t, checklist.Missing, "At least one approved photo required")
	assert.Contains(t, checklist.Missing, "Active subscription required")

	// Outcall is disabled, so its rate requirement must not appear.
	assert.NotContains(t, checklist.Missing, "At least one outcall rate required")
}

func TestCanSubmitForReview_Valid(t *testing.T) {
	t.Parallel()

	profile, user, sub, counts := publishableFixture()
	profile.AdminStatus = models.AdminPending // submission precedes approval

	checklist := CanSubmitForReview(profile, user, sub, counts)
	assert.True(t, checklist.Valid)
	assert.Empty(t, checklist.Missing)
}

func TestCalculateStage(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("failed identity blocks", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		user.IdentityStatus = models.IdentityFailed
		assert.Equal(t, models.StageBlocked, CalculateStage(profile, user, sub, counts))
	})

	t.Run("admin rejection blocks", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		profile.AdminStatus = models.AdminRejected
		assert.Equal(t, models.StageBlocked, CalculateStage(profile, user, sub, counts))
	})

	t.Run("submitted profile waits for admin", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		profile.AdminStatus = models.AdminPending
		profile.SubmittedAt = &now
		assert.Equal(t, models.StageWaitingAdmin, CalculateStage(profile, user, sub, counts))
	})

	t.Run("changes requested returns to building", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		profile.AdminStatus = models.AdminChangesRequested
		assert.Equal(t, models.StageBuildProfile, CalculateStage(profile, user, sub, counts))
	})

	t.Run("published approved verified is live", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		profile.PublicationStatus = models.PublicationPublic
		assert.Equal(t, models.StageLive, CalculateStage(profile, user, sub, counts))
	})

	t.Run("lapsed subscription needs payment", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		sub.Status = models.SubscriptionPastDue
		assert.Equal(t, models.StageNeedsPayment, CalculateStage(profile, user, sub, counts))
	})

	t.Run("pending identity needs identity", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		user.IdentityStatus = models.IdentityPending
		assert.Equal(t, models.StageNeedsIdentity, CalculateStage(profile, user, sub, counts))
	})

	t.Run("flagged moderation needs fixing", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		profile.AutoModeration = models.ModerationAutoBlocked
		assert.Equal(t, models.StageFixModeration, CalculateStage(profile, user, sub, counts))
	})

	t.Run("no approved photo means upload", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		counts.ApprovedPhotos = 0
		assert.Equal(t, models.StageUploadPhotos, CalculateStage(profile, user, sub, counts))
	})

	t.Run("complete checklist means submit", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		assert.Equal(t, models.StageSubmitAdmin, CalculateStage(profile, user, sub, counts))
	})

	t.Run("incomplete profile keeps building", func(t *testing.T) {
		profile, user, sub, counts := publishableFixture()
		counts.Languages = 0
		assert.Equal(t, models.StageBuildProfile, CalculateStage(profile, user, sub, counts))
	})
}
