package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/auth"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// SignupRequest creates a new platform actor.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Phone    string
}

// AuthResult is a successful login or signup.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles signup, login and impersonation.
type AuthService struct {
	userRepo             repository.UserRepository
	jwtSecret            string
	jwtExpiration        time.Duration
	impersonationTimeout time.Duration
}

// NewAuthService creates the auth service.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration, impersonationTimeout time.Duration) *AuthService {
	return &AuthService{
		userRepo:             userRepo,
		jwtSecret:            jwtSecret,
		jwtExpiration:        jwtExpiration,
		impersonationTimeout: impersonationTimeout,
	}
}

// Signup registers a user and returns a session token.
func (s *AuthService) Signup(req SignupRequest) (*AuthResult, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: email %s", ErrConflict, req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := auth.Mint(s.jwtSecret, user, s.jwtExpiration)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks credentials and returns a session token.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	token, err := auth.Mint(s.jwtSecret, user, s.jwtExpiration)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken parses a token and loads the user it names. The
// returned claims expose the impersonating actor, when any.
func (s *AuthService) ValidateToken(token string) (*models.User, *auth.Claims, error) {
	claims, err := auth.Verify(s.jwtSecret, token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	return user, claims, nil
}

// Impersonate mints an impersonation token for a relationship manager
// acting as tutorID.
func (s *AuthService) Impersonate(actor *models.User, tutorID uuid.UUID) (string, error) {
	if actor.Role != models.RoleRelationshipManager {
		return "", fmt.Errorf("%w: only relationship managers may impersonate", ErrForbidden)
	}
	tutor, err := s.userRepo.GetByID(tutorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: tutor %s", ErrNotFound, tutorID)
		}
		return "", err
	}
	if tutor.Role != models.RoleTutor {
		return "", fmt.Errorf("%w: user %s is not a tutor", ErrInvalidInput, tutorID)
	}
	return auth.MintImpersonation(s.jwtSecret, actor, tutor, s.impersonationTimeout)
}
