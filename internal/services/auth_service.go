package services

import (
	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/auth"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokens      *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokens *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
	}
}

// Register creates the account and its empty profile, already moved past the
// signup transition into plan selection.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, appErrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleTherapist,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:          user.ID,
			OnboardingStage: models.StageNeedsPlan,
		}
		return s.profileRepo.Create(tx, profile)
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID)

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.LoginResponse{AccessToken: token, UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(db, user.ID); err != nil {
		logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.LoginResponse{AccessToken: token, UserID: user.ID, Role: user.Role}, nil
}
