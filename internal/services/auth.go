package services

import (
	"errors"
	"time"

	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/campusrate/campusrate-backend/internal/types"
	"github.com/campusrate/campusrate-backend/internal/utils"
	"github.com/campusrate/campusrate-backend/pkg/logger"
	"gorm.io/gorm"
)

type AuthService struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *EmailService
}

func NewAuthService(db *gorm.DB, jwtSecret string, emailService *EmailService) *AuthService {
	return &AuthService{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (s *AuthService) Register(req RegisterRequest) (*types.AuthResponse, error) {
	req.Username = utils.SanitizeString(req.Username)
	req.Email = utils.SanitizeString(req.Email)

	if !utils.IsValidUsername(req.Username) {
		return nil, ErrInvalidUsername
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, ErrInvalidPassword
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	// Set default role
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if !models.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// Username and email collisions are reported as distinct errors
	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if req.Email != "" {
		if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		Username: req.Username,
		Password: req.Password, // Hashed in the BeforeCreate hook
		Role:     req.Role,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, errors.New("failed to create user")
	}

	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Username, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate tokens")
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
		IsRevoked: false,
	}
	if err := s.db.Create(&refreshToken).Error; err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	if user.Email != nil && s.emailService.Enabled() {
		if err := s.emailService.SendWelcomeEmail(*user.Email, user.Username); err != nil {
			logger.Warn("Failed to send welcome email: ", err)
		}
	}

	return &types.AuthResponse{
		Token: types.TokenPair{
			AccessToken:           tokenPair.AccessToken,
			RefreshToken:          tokenPair.RefreshToken,
			AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		},
		User: user,
	}, nil
}

func (s *AuthService) Login(req LoginRequest) (*types.AuthResponse, error) {
	// Unknown username and wrong password both return ErrInvalidCredentials;
	// callers must not be able to tell the two apart.
	var user models.User
	if err := s.db.Where("username = ?", utils.SanitizeString(req.Username)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	// Revoke all existing refresh tokens for this user
	s.db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Update("is_revoked", true)

	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Username, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate tokens")
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
		IsRevoked: false,
	}
	if err := s.db.Create(&refreshToken).Error; err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	return &types.AuthResponse{
		Token: types.TokenPair{
			AccessToken:           tokenPair.AccessToken,
			RefreshToken:          tokenPair.RefreshToken,
			AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		},
		User: user,
	}, nil
}

func (s *AuthService) RefreshToken(req RefreshRequest) (*types.AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if claims.Type != string(utils.RefreshToken) {
		return nil, errors.New("invalid token type")
	}

	var refreshToken models.RefreshToken
	if err := s.db.Where("token = ? AND is_revoked = ? AND expires_at > ?", req.RefreshToken, false, time.Now()).
		First(&refreshToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or expired")
		}
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, refreshToken.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	// Rotate: revoke the old token and store the new one in one transaction
	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Username, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate new tokens")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		refreshToken.IsRevoked = true
		if err := tx.Save(&refreshToken).Error; err != nil {
			return err
		}
		newRefresh := models.RefreshToken{
			UserID:    user.ID,
			Token:     tokenPair.RefreshToken,
			ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
			IsRevoked: false,
		}
		return tx.Create(&newRefresh).Error
	})
	if err != nil {
		return nil, errors.New("failed to rotate refresh token")
	}

	return &types.AuthResponse{
		Token: types.TokenPair{
			AccessToken:           tokenPair.AccessToken,
			RefreshToken:          tokenPair.RefreshToken,
			AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		},
		User: user,
	}, nil
}

func (s *AuthService) Logout(refreshToken string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token = ?", refreshToken).
		Update("is_revoked", true).Error
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
