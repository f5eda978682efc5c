// internal/services/auth_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/models"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/utils"
)

// AuthService handles registration, login, and token refresh. Failed logins
// are tracked in memory per identifier; too many in a row lock the account
// out for a fixed window regardless of whether later attempts are correct.
type AuthService struct {
	store   store.Store
	cfg     config.AuthConfig
	jwtCfg  config.JWTConfig
	timeout time.Duration

	mu       sync.Mutex
	attempts map[string]*loginAttempts
}

type loginAttempts struct {
	count       int
	lockedUntil time.Time
}

type RegisterRequest struct {
	Username string        `json:"username" validate:"required,username"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,strong_password"`
	Phone    string        `json:"phone,omitempty" validate:"omitempty,ps_phone"`
	City     string        `json:"city,omitempty" validate:"omitempty,max=100"`
	Region   models.Region `json:"region,omitempty"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type AuthTokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func NewAuthService(s store.Store, cfg config.AuthConfig, jwtCfg config.JWTConfig, timeout time.Duration) *AuthService {
	return &AuthService{
		store:    s,
		cfg:      cfg,
		jwtCfg:   jwtCfg,
		timeout:  timeout,
		attempts: make(map[string]*loginAttempts),
	}
}

func (s *AuthService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Register creates a new member account. Email and username must both be
// unused; the password is stored as a bcrypt hash, never in clear.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *AuthTokens, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Region != "" && !req.Region.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid region %q", ErrValidation, req.Region)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if existing, err := s.store.GetUserByEmail(ctx, email); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBackend, err)
	} else if existing != nil {
		return nil, nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}
	if existing, err := s.store.GetUserByUsername(ctx, username); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBackend, err)
	} else if existing != nil {
		return nil, nil, fmt.Errorf("%w: username already taken", ErrValidation)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Phone:    req.Phone,
		City:     req.City,
		Region:   req.Region,
		UserType: models.UserTypeMember,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	tokens, err := s.issueTokens(user, false)
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, tokens, nil
}

// Login authenticates by email or username. A wrong password counts toward
// the lockout; a locked account rejects even correct passwords until the
// window passes. remember_me stretches the refresh token lifetime.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*models.User, *AuthTokens, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))

	if until, locked := s.lockedUntil(identifier); locked {
		logrus.WithField("identifier", identifier).Warn("Login attempt on locked account")
		return nil, nil, fmt.Errorf("%w: locked until %s", ErrAccountLocked, until.Format(time.RFC3339))
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.store.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.store.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if user == nil || user.CheckPassword(req.Password) != nil {
		// Unknown identifiers burn attempts too, so probing gets locked out
		// the same as password guessing.
		s.recordFailure(identifier)
		return nil, nil, ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, nil, ErrAccountDisabled
	}

	s.clearFailures(identifier)

	tokens, err := s.issueTokens(user, req.RememberMe)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.store.SaveUser(ctx, user); err != nil {
		logrus.WithError(err).Warn("Failed to record last login time")
	}

	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *AuthTokens, error) {
	subject, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed subject", ErrInvalidCredentials)
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, nil, ErrAccountDisabled
	}

	tokens, err := s.issueTokens(user, false)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Logout records the event. Tokens are stateless and expire on their own;
// the client is expected to discard its pair.
func (s *AuthService) Logout(userID uuid.UUID) {
	logrus.WithField("user_id", userID).Info("User logged out")
}

// GetUserByID loads a user, or (nil, nil) when the id is unknown.
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User, rememberMe bool) (*AuthTokens, error) {
	access, err := utils.GenerateJWT(user.ID, user.Username, string(user.UserType), s.jwtCfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	refreshTTL := s.jwtCfg.RefreshTokenTTL
	if rememberMe {
		refreshTTL = s.jwtCfg.RememberMeTTL
	}
	refresh, err := utils.GenerateRefreshToken(user.ID, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(time.Duration(s.jwtCfg.AccessTokenTTL) * time.Hour),
	}, nil
}

func (s *AuthService) lockedUntil(identifier string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[identifier]
	if !ok {
		return time.Time{}, false
	}
	if time.Now().Before(a.lockedUntil) {
		return a.lockedUntil, true
	}
	if !a.lockedUntil.IsZero() {
		// Lock expired: start over.
		delete(s.attempts, identifier)
	}
	return time.Time{}, false
}

func (s *AuthService) recordFailure(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[identifier]
	if !ok {
		a = &loginAttempts{}
		s.attempts[identifier] = a
	}
	a.count++
	if a.count >= s.cfg.MaxLoginAttempts {
		a.lockedUntil = time.Now().Add(time.Duration(s.cfg.LockoutMinutes) * time.Minute)
		logrus.WithFields(logrus.Fields{
			"identifier": identifier,
			"until":      a.lockedUntil,
		}).Warn("Account locked after repeated login failures")
	}
}

func (s *AuthService) clearFailures(identifier string) {
	s.mu.Lock()
	delete(s.attempts, identifier)
	s.mu.Unlock()
}
