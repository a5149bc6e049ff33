package helpers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"
	"time"

	"masseurmatch_backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the raw password first.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User, rawPassword string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	require.NoError(t, err, "failed to hash password")
	user.PasswordHash = string(hash)

	require.NoError(t, tx.Create(user).Error, "failed to create test user")
}

// CreateAndLoginTherapist registers a therapist through the API and returns
// the access token plus the created user.
func CreateAndLoginTherapist(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("therapist_%d@test.com", time.Now().UnixNano())
	password := "password12345"

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration failed: "+body)

	var user models.User
	require.NoError(t, tx.Where("email = ?", email).First(&user).Error)

	token, err := ts.Tokens.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	return token, &user
}

// CreateAndLoginAdmin inserts an admin directly and returns a token for it.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	user := &models.User{
		Email: fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano()),
		Role:  models.UserRoleAdmin,
	}
	CreateUser(t, tx, user, "admin_password1")

	token, err := ts.Tokens.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	return token, user
}

// MakeSubmittable fills in everything the submission checklist wants:
// verified identity, complete profile fields, an approved photo and an
// active rate for the enabled context.
func MakeSubmittable(t *testing.T, tx *gorm.DB, user *models.User) *models.Profile {
	require.NoError(t, tx.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("identity_status", models.IdentityVerified).Error)

	var profile models.Profile
	require.NoError(t, tx.Where("user_id = ?", user.ID).First(&profile).Error)

	profile.DisplayName = "Alex Stone"
	profile.Slug = fmt.Sprintf("alex-stone-%d", time.Now().UnixNano())
	profile.BioShort = "Certified massage therapist offering deep tissue and sports massage sessions."
	profile.CitySlug = "austin"
	profile.CityName = "Austin"
	profile.PhonePublicE164 = "+15125550100"
	profile.IncallEnabled = true
	profile.Languages = pq.StringArray{"english"}
	profile.Services = pq.StringArray{"deep_tissue"}
	profile.Setups = pq.StringArray{"table"}
	profile.AutoModeration = models.ModerationAutoPassed
	profile.OnboardingStage = models.StageSubmitAdmin
	require.NoError(t, tx.Save(&profile).Error)

	photo := &models.MediaAsset{
		ProfileID:  profile.ID,
		Type:       models.MediaTypePhoto,
		Status:     models.MediaApproved,
		IsCover:    true,
		StorageKey: fmt.Sprintf("profiles/%s/photos/seed.jpg", profile.ID),
	}
	require.NoError(t, tx.Create(photo).Error)

	rate := &models.ProfileRate{
		ProfileID:       profile.ID,
		Context:         models.ContextIncall,
		DurationMinutes: 60,
		PriceCents:      12000,
		IsActive:        true,
	}
	require.NoError(t, tx.Create(rate).Error)

	return &profile
}

// MakePNG encodes a solid-color PNG for upload tests.
func MakePNG(t *testing.T, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 120, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// MakeLive pushes a submittable profile all the way to the public directory.
func MakeLive(t *testing.T, tx *gorm.DB, user *models.User) *models.Profile {
	profile := MakeSubmittable(t, tx, user)

	now := time.Now().UTC()
	profile.OnboardingStage = models.StageLive
	profile.AdminStatus = models.AdminApproved
	profile.PublicationStatus = models.PublicationPublic
	profile.SubmittedAt = &now
	profile.ApprovedAt = &now
	require.NoError(t, tx.Save(profile).Error)

	return profile
}
