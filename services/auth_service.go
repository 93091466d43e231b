package services

import (
	"context"
	"easy-shop/models"
	"easy-shop/utils"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AuthService struct {
	users    UserStore
	sessions *SessionService
	tokens   *utils.TokenIssuer
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAuthService(users UserStore, sessions *SessionService, tokens *utils.TokenIssuer, timeout time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		timeout:  timeout,
		logger:   logger,
	}
}

// CreateAccount registers a new identity. It does not sign the caller in.
func (s *AuthService) CreateAccount(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, &models.ValidationError{Field: "email", Message: "Email is required"}
	}
	if req.Password == "" {
		return nil, &models.ValidationError{Field: "password", Message: "Password is required"}
	}
	if req.Password != req.ConfirmPassword {
		return nil, &models.ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	if s.sessions.IsAdminEmail(email) {
		s.logger.Warn("registration with reserved admin email refused", zap.String("email", email))
		return nil, models.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeErr("create account", err)
	}

	s.logger.Info("account created", zap.String("email", email))
	return user, nil
}

// EnsureAdminAccount creates the administrator account with password when it
// does not exist yet. An existing account is left untouched.
func (s *AuthService) EnsureAdminAccount(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return storeErr("find admin account", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, &models.User{Email: email, Password: hashedPassword})
	if err != nil && !errors.Is(err, models.ErrEmailTaken) {
		return storeErr("create admin account", err)
	}

	s.logger.Info("admin account seeded", zap.String("email", email))
	return nil
}

// SignIn verifies credentials and opens a fresh session.
func (s *AuthService) SignIn(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, storeErr("sign in", err)
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	session := s.sessions.Create(user.Email)

	token, err := s.tokens.GenerateToken(session.ID, session.Email, string(session.Role))
	if err != nil {
		s.sessions.Destroy(session.ID)
		return nil, err
	}

	s.logger.Info("signed in",
		zap.String("email", session.Email),
		zap.String("role", string(session.Role)),
		zap.String("session_id", session.ID),
	)

	return &models.LoginResponse{
		Token:   token,
		Session: session.View(),
	}, nil
}

// SignOut drops the session and its cart. Unknown sessions are ignored.
func (s *AuthService) SignOut(session *models.Session) {
	if session == nil {
		return
	}
	s.sessions.Destroy(session.ID)
	s.logger.Info("signed out", zap.String("session_id", session.ID))
}

// Authenticate resolves a bearer token to its live session.
func (s *AuthService) Authenticate(token string) (*models.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(claims.SessionID)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
