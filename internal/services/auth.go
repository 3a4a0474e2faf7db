package services

import (
	"errors"

	"inkwell/internal/apperr"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new account. A duplicate email is a conflict and leaves
// the existing record untouched.
func (s *AuthService) SignUp(req SignUpRequest) (*models.User, error) {
	log.Info().Str("email", req.Email).Msg("registering user")

	var count int64
	if err := db.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Email already in use!")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// Two signups can race past the count check; the unique index on
		// email settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already in use!")
		}
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Msg("user registered")
	return &user, nil
}

// SignIn looks the user up by email and verifies the password against the
// stored bcrypt hash. An unknown email and a wrong password are deliberately
// indistinguishable.
func (s *AuthService) SignIn(req SignInRequest) (*models.User, error) {
	log.Info().Str("email", req.Email).Msg("validating user")

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("email", req.Email).Msg("signin failed: unknown email")
			return nil, apperr.Invalid("Invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		log.Warn().Str("email", req.Email).Msg("signin failed: wrong password")
		return nil, apperr.Invalid("Invalid email or password")
	}

	return &user, nil
}

// UsernamesByIDs resolves usernames for a set of user IDs. Missing IDs are
// simply absent from the result.
func (s *AuthService) UsernamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := db.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}
