package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/orderhub/orderhub-backend/pkg/auth"
	"github.com/orderhub/orderhub-backend/pkg/config"
	"github.com/orderhub/orderhub-backend/pkg/db"
	"github.com/orderhub/orderhub-backend/pkg/db/models"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
	"github.com/orderhub/orderhub-backend/pkg/security"
)

const minPasswordLength = 8

// Service exposes login and password recovery.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type resetMailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

type service struct {
	repo     userStore
	mailer   resetMailer
	logg     *logger.Logger
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	resetTTL time.Duration
	now      func() time.Time
}

// NewService constructs an auth service instance.
func NewService(repo userStore, mailer resetMailer, logg *logger.Logger, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, resetTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if resetTTL <= 0 {
		return nil, fmt.Errorf("reset ttl must be positive")
	}
	return &service{
		repo:     repo,
		mailer:   mailer,
		logg:     logg,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		resetTTL: resetTTL,
		now:      time.Now,
	}, nil
}

// Login verifies credentials and mints an access token carrying the user's
// role and tenant scope.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if !user.Active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:     user.ID,
		Role:       user.Role,
		SellerID:   user.SellerID,
		CustomerID: user.CustomerID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	return &LoginResult{Token: token, User: NewUserDTO(user)}, nil
}

// ForgotPassword issues a reset token and mails it. Unknown emails succeed
// silently so the endpoint cannot be used to enumerate accounts.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			s.logg.Info(ctx, "password reset requested for unknown email")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating reset token")
	}

	expiry := s.now().Add(s.resetTTL)
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiry
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving reset token")
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending reset email")
	}
	return nil
}

// ResetPassword consumes a valid reset token and replaces the password.
func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reset token is required")
	}
	if len(newPassword) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	}

	user, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if user.ResetTokenExpiresAt == nil || s.now().After(*user.ResetTokenExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
	}

	hash, err := security.HashPassword(newPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving password")
	}
	return nil
}
