package repositories

import (
	"errors"
	"time"

	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

// DirectorySearchCriteria filters the public directory listing.
type DirectorySearchCriteria struct {
	Query    string `form:"query"`
	CitySlug string `form:"city"`
	Incall   *bool  `form:"incall"`
	Outcall  *bool  `form:"outcall"`
	Language string `form:"language"`
	Service  string `form:"service"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error
	UpdateStage(db *gorm.DB, profileID string, stage models.OnboardingStage) error
	SetPublication(db *gorm.DB, profileID string, status models.PublicationStatus) error
	SetAdminStatus(db *gorm.DB, profileID string, status models.AdminStatus, notes string) error
	MarkSubmitted(db *gorm.DB, profileID string, at time.Time) error
	IncrementViews(db *gorm.DB, profileID string) error

	SearchPublic(db *gorm.DB, criteria DirectorySearchCriteria) ([]models.Profile, int64, error)
	ListPublic(db *gorm.DB) ([]models.Profile, error)
	FindByAdminStatus(db *gorm.DB, status models.AdminStatus, limit, offset int) ([]models.Profile, int64, error)

	// RelationCounts aggregates the facts the onboarding gates consult.
	RelationCounts(db *gorm.DB, profile *models.Profile) (onboarding.RelationCounts, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	var count int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", profile.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProfileAlreadyExists
	}
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	return r.findOne(db, "user_id = ?", userID)
}

func (r *ProfileRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Profile, error) {
	return r.findOne(db, "slug = ?", slug)
}

func (r *ProfileRepositoryImpl) findOne(db *gorm.DB, query string, arg interface{}) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateStage(db *gorm.DB, profileID string, stage models.OnboardingStage) error {
	return db.Model(&models.Profile{}).Where("id = ?", profileID).
		Update("onboarding_stage", stage).Error
}

func (r *ProfileRepositoryImpl) SetPublication(db *gorm.DB, profileID string, status models.PublicationStatus) error {
	return db.Model(&models.Profile{}).Where("id = ?", profileID).
		Update("publication_status", status).Error
}

func (r *ProfileRepositoryImpl) SetAdminStatus(db *gorm.DB, profileID string, status models.AdminStatus, notes string) error {
	updates := map[string]interface{}{
		"admin_status": status,
		"admin_notes":  notes,
	}
	if status == models.AdminApproved {
		updates["approved_at"] = time.Now()
	}
	return db.Model(&models.Profile{}).Where("id = ?", profileID).Updates(updates).Error
}

func (r *ProfileRepositoryImpl) MarkSubmitted(db *gorm.DB, profileID string, at time.Time) error {
	return db.Model(&models.Profile{}).Where("id = ?", profileID).Updates(map[string]interface{}{
		"submitted_at": at,
		"admin_status": models.AdminPending,
	}).Error
}

func (r *ProfileRepositoryImpl) IncrementViews(db *gorm.DB, profileID string) error {
	return db.Model(&models.Profile{}).Where("id = ?", profileID).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error
}

func (r *ProfileRepositoryImpl) SearchPublic(db *gorm.DB, criteria DirectorySearchCriteria) ([]models.Profile, int64, error) {
	query := db.Model(&models.Profile{}).
		Where("publication_status = ?", models.PublicationPublic).
		Where("admin_status = ?", models.AdminApproved)

	if criteria.CitySlug != "" {
		query = query.Where("city_slug = ?", criteria.CitySlug)
	}
	if criteria.Query != "" {
		like := "%" + criteria.Query + "%"
		query = query.Where("display_name ILIKE ? OR bio_short ILIKE ?", like, like)
	}
	if criteria.Incall != nil {
		query = query.Where("incall_enabled = ?", *criteria.Incall)
	}
	if criteria.Outcall != nil {
		query = query.Where("outcall_enabled = ?", *criteria.Outcall)
	}
	if criteria.Language != "" {
		query = query.Where("? = ANY(languages)", criteria.Language)
	}
	if criteria.Service != "" {
		query = query.Where("? = ANY(services)", criteria.Service)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	perPage := criteria.PerPage
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}

	var profiles []models.Profile
	err := query.
		Order("approved_at DESC NULLS LAST").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *ProfileRepositoryImpl) ListPublic(db *gorm.DB) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.Where("publication_status = ?", models.PublicationPublic).Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) FindByAdminStatus(db *gorm.DB, status models.AdminStatus, limit, offset int) ([]models.Profile, int64, error) {
	// pending_admin is also the column default, so a bare status filter
	// would sweep in profiles that never reached the queue.
	query := db.Model(&models.Profile{}).
		Where("admin_status = ?", status).
		Where("submitted_at IS NOT NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.Profile
	err := query.Order("submitted_at ASC NULLS LAST").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

func (r *ProfileRepositoryImpl) RelationCounts(db *gorm.DB, profile *models.Profile) (onboarding.RelationCounts, error) {
	counts := onboarding.RelationCounts{
		Languages: len(profile.Languages),
		Services:  len(profile.Services),
		Setups:    len(profile.Setups),
	}

	var approvedPhotos int64
	err := db.Model(&models.MediaAsset{}).
		Where("profile_id = ? AND type = ? AND status = ?",
			profile.ID, models.MediaTypePhoto, models.MediaApproved).
		Count(&approvedPhotos).Error
	if err != nil {
		return counts, err
	}
	counts.ApprovedPhotos = int(approvedPhotos)

	type contextCount struct {
		Context models.RateContext
		N       int
	}
	var rateCounts []contextCount
	err = db.Model(&models.ProfileRate{}).
		Select("context, count(*) as n").
		Where("profile_id = ? AND is_active = true", profile.ID).
		Group("context").
		Scan(&rateCounts).Error
	if err != nil {
		return counts, err
	}
	for _, rc := range rateCounts {
		switch rc.Context {
		case models.ContextIncall:
			counts.IncallRates = rc.N
		case models.ContextOutcall:
			counts.OutcallRates = rc.N
		}
	}

	return counts, nil
}
