package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/imageprocessor"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"
	"masseurmatch_backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UploadLimits struct {
	MaxSizeBytes int64
	AllowedTypes []string
}

// MinPhotoDimension is the smallest edge accepted for gallery photos; anything
// below renders blurry on the directory cards.
const MinPhotoDimension = 320

// renditionKey names one stored rendition of an upload, e.g.
// profiles/<id>/photos/<uuid>_gallery.jpg.
func renditionKey(base, name, ext string) string {
	return fmt.Sprintf("%s_%s%s", base, name, ext)
}

// siblingRenditionKeys expands a gallery key into every rendition stored for
// the same upload.
func siblingRenditionKeys(galleryKey string) []string {
	keys := make([]string, 0, len(imageprocessor.GalleryRenditions))
	for _, size := range imageprocessor.GalleryRenditions {
		keys = append(keys, strings.Replace(galleryKey,
			"_"+imageprocessor.SizeGallery.Name, "_"+size.Name, 1))
	}
	return keys
}

type MediaService interface {
	UploadPhoto(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.MediaResponse, error)
	ListMyMedia(db *gorm.DB, userID string) ([]dto.MediaResponse, error)
	SetCover(db *gorm.DB, userID, assetID string) error
	Reorder(db *gorm.DB, userID string, orderedIDs []string) error
	DeleteMedia(ctx context.Context, db *gorm.DB, userID, assetID string) error

	// ApplyModerationVerdict ingests the image-moderation vendor callback.
	ApplyModerationVerdict(db *gorm.DB, req *dto.MediaModerationRequest) error
}

type MediaServiceImpl struct {
	profileRepo repositories.ProfileRepository
	mediaRepo   repositories.MediaRepository
	subRepo     repositories.SubscriptionRepository
	onboarding  OnboardingService
	store       storage.ObjectStore
	processor   *imageprocessor.Processor
	planLimits  models.PlanLimits
	limits      UploadLimits
}

func NewMediaService(
	profileRepo repositories.ProfileRepository,
	mediaRepo repositories.MediaRepository,
	subRepo repositories.SubscriptionRepository,
	onboardingSvc OnboardingService,
	store storage.ObjectStore,
	processor *imageprocessor.Processor,
	planLimits models.PlanLimits,
	limits UploadLimits,
) MediaService {
	return &MediaServiceImpl{
		profileRepo: profileRepo,
		mediaRepo:   mediaRepo,
		subRepo:     subRepo,
		onboarding:  onboardingSvc,
		store:       store,
		processor:   processor,
		planLimits:  planLimits,
		limits:      limits,
	}
}

func toMediaResponse(m *models.MediaAsset) dto.MediaResponse {
	return dto.MediaResponse{
		ID:              m.ID,
		Type:            m.Type,
		Status:          m.Status,
		Position:        m.Position,
		IsCover:         m.IsCover,
		PublicURL:       m.PublicURL,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
	}
}

func (s *MediaServiceImpl) contentTypeAllowed(contentType string) bool {
	for _, t := range s.limits.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

func (s *MediaServiceImpl) currentPlan(db *gorm.DB, userID string) models.SubscriptionPlan {
	sub, err := s.subRepo.FindActiveByUserID(db, userID)
	if err != nil {
		return models.PlanFree
	}
	return sub.Plan
}

func (s *MediaServiceImpl) UploadPhoto(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.MediaResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}

	if file.Size > s.limits.MaxSizeBytes {
		return nil, appErrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the %d byte upload limit", s.limits.MaxSizeBytes))
	}
	contentType := file.Header.Get("Content-Type")
	if !s.contentTypeAllowed(contentType) {
		return nil, appErrors.NewBadRequestError("Unsupported file type")
	}

	// Pending photos count against the ceiling too, otherwise a burst of
	// uploads could overshoot the plan while moderation is in flight.
	plan := s.currentPlan(db, userID)
	limit := s.planLimits.PhotoLimit(plan)
	total, err := s.mediaRepo.CountByType(db, profile.ID, models.MediaTypePhoto)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if total >= int64(limit) {
		return nil, appErrors.ErrPhotoLimitReached.WithDetails(map[string]interface{}{
			"plan":  plan,
			"limit": limit,
		})
	}

	src, err := file.Open()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	width, height, err := imageprocessor.GetImageDimensions(bytes.NewReader(raw))
	if err != nil {
		return nil, appErrors.NewBadRequestError("File is not a valid image")
	}
	if width < MinPhotoDimension || height < MinPhotoDimension {
		return nil, appErrors.NewBadRequestError(
			fmt.Sprintf("Photos must be at least %dx%d pixels", MinPhotoDimension, MinPhotoDimension))
	}

	// Renditions are re-encoded, so the stored extension and content type
	// follow the output format, not the upload (WebP comes out as jpeg).
	format, storedType, ext := "jpeg", "image/jpeg", ".jpg"
	if contentType == "image/png" {
		format, storedType, ext = "png", "image/png", ".png"
	}

	base := fmt.Sprintf("profiles/%s/photos/%s", profile.ID, uuid.NewString())
	key := renditionKey(base, imageprocessor.SizeGallery.Name, ext)
	for _, size := range imageprocessor.GalleryRenditions {
		processed, err := s.processor.ProcessImage(bytes.NewReader(raw), size, format)
		if err != nil {
			return nil, appErrors.NewBadRequestError("File is not a valid image")
		}
		if err := s.store.Save(ctx, renditionKey(base, size.Name, ext), processed, storedType); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}

	publicURL, err := s.store.GetURL(ctx, key)
	if err != nil {
		logger.Warn("stored asset has no public url", "key", key, "error", err)
	}

	asset := &models.MediaAsset{
		ProfileID:   profile.ID,
		Type:        models.MediaTypePhoto,
		Status:      models.MediaPending,
		Position:    int(total),
		StorageKey:  key,
		PublicURL:   publicURL,
		ContentType: storedType,
		SizeBytes:   file.Size,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.mediaRepo.Create(tx, asset); err != nil {
			return err
		}
		if total == 0 {
			// First upload becomes the cover until the user picks one.
			return s.mediaRepo.SetCover(tx, profile.ID, asset.ID)
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("photo uploaded", "profile_id", profile.ID, "asset_id", asset.ID)

	resp := toMediaResponse(asset)
	return &resp, nil
}

func (s *MediaServiceImpl) ListMyMedia(db *gorm.DB, userID string) ([]dto.MediaResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}
	assets, err := s.mediaRepo.ListByProfile(db, profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := make([]dto.MediaResponse, 0, len(assets))
	for i := range assets {
		out = append(out, toMediaResponse(&assets[i]))
	}
	return out, nil
}

func (s *MediaServiceImpl) ownedAsset(db *gorm.DB, userID, assetID string) (*models.Profile, *models.MediaAsset, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, nil, appErrors.ErrProfileNotFound
	}
	asset, err := s.mediaRepo.FindByID(db, assetID)
	if err != nil {
		return nil, nil, appErrors.ErrMediaNotFound
	}
	if asset.ProfileID != profile.ID {
		return nil, nil, appErrors.ErrForbidden
	}
	return profile, asset, nil
}

func (s *MediaServiceImpl) SetCover(db *gorm.DB, userID, assetID string) error {
	profile, asset, err := s.ownedAsset(db, userID, assetID)
	if err != nil {
		return err
	}
	if asset.Status != models.MediaApproved {
		return appErrors.NewBadRequestError("Only approved photos can be the cover")
	}
	if err := s.mediaRepo.SetCover(db, profile.ID, assetID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *MediaServiceImpl) Reorder(db *gorm.DB, userID string, orderedIDs []string) error {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return appErrors.ErrProfileNotFound
	}
	if err := s.mediaRepo.Reorder(db, profile.ID, orderedIDs); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *MediaServiceImpl) DeleteMedia(ctx context.Context, db *gorm.DB, userID, assetID string) error {
	_, asset, err := s.ownedAsset(db, userID, assetID)
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.mediaRepo.Delete(tx, assetID); err != nil {
			return err
		}
		// Deleting the last approved photo can invalidate a live listing.
		return s.onboarding.SyncPublication(tx, userID)
	})
	if err != nil {
		return appErrors.InternalError(err)
	}
	for _, key := range siblingRenditionKeys(asset.StorageKey) {
		if err := s.store.Delete(ctx, key); err != nil {
			// The row is gone; a stray object is cleanup, not failure.
			logger.Warn("failed to delete stored object", "key", key, "error", err)
		}
	}
	return nil
}

func (s *MediaServiceImpl) ApplyModerationVerdict(db *gorm.DB, req *dto.MediaModerationRequest) error {
	asset, err := s.mediaRepo.FindByID(db, req.AssetID)
	if err != nil {
		return appErrors.ErrMediaNotFound
	}

	status := models.MediaRejected
	if req.Verdict == "approved" {
		status = models.MediaApproved
	}

	var payload datatypes.JSON
	if req.Payload != nil {
		raw, err := json.Marshal(req.Payload)
		if err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	profile, err := s.profileRepo.FindByID(db, asset.ProfileID)
	if err != nil {
		return appErrors.ErrProfileNotFound
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.mediaRepo.UpdateStatus(tx, asset.ID, status, req.Reason, payload); err != nil {
			return err
		}
		if status == models.MediaApproved {
			return s.onboarding.Apply(tx, profile.UserID, onboarding.EventPhotoUploaded)
		}
		// A rejection can strip a live profile of its last approved photo.
		return s.onboarding.SyncPublication(tx, profile.UserID)
	})
}
