package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/config"
	"github.com/orderhub/orderhub-backend/pkg/db/models"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
	"github.com/orderhub/orderhub-backend/pkg/security"
)

type stubUserStore struct {
	users map[uuid.UUID]*models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, user := range s.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) UpdateUser(_ context.Context, user *models.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

type stubMailer struct {
	sent []string // tokens
	err  error
}

func (m *stubMailer) SendPasswordReset(_ context.Context, _, token string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, token)
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "orderhub", ExpirationMinutes: 30}
}

func newTestService(t *testing.T, store *stubUserStore, mailer *stubMailer) *service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(store, mailer, logg, testJWTConfig(), testPasswordConfig(), 2*time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func seedUser(t *testing.T, store *stubUserStore, email, password string, role enums.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	sellerID := uuid.New()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		SellerID:     &sellerID,
		Active:       active,
	}
	store.users[user.ID] = user
	return user
}

func TestLogin(t *testing.T) {
	store := newStubUserStore()
	svc := newTestService(t, store, &stubMailer{})
	user := seedUser(t, store, "owner@alfa.com", "s3nh4forte", enums.UserRoleSeller, true)

	result, err := svc.Login(context.Background(), "  Owner@Alfa.com ", "s3nh4forte")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected minted token")
	}
	if result.User.ID != user.ID {
		t.Fatalf("unexpected user id %s", result.User.ID)
	}
	if result.User.SellerID == nil || *result.User.SellerID != *user.SellerID {
		t.Fatal("seller scope missing from login result")
	}
}

func TestLogin_Failures(t *testing.T) {
	store := newStubUserStore()
	svc := newTestService(t, store, &stubMailer{})
	seedUser(t, store, "owner@alfa.com", "s3nh4forte", enums.UserRoleSeller, true)
	seedUser(t, store, "blocked@alfa.com", "s3nh4forte", enums.UserRoleSeller, false)

	tests := []struct {
		name     string
		email    string
		password string
		wantCode pkgerrors.Code
	}{
		{name: "unknown email", email: "ghost@alfa.com", password: "s3nh4forte", wantCode: pkgerrors.CodeUnauthorized},
		{name: "wrong password", email: "owner@alfa.com", password: "errada", wantCode: pkgerrors.CodeUnauthorized},
		{name: "inactive user", email: "blocked@alfa.com", password: "s3nh4forte", wantCode: pkgerrors.CodeUnauthorized},
		{name: "blank password", email: "owner@alfa.com", password: "", wantCode: pkgerrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestForgotPassword(t *testing.T) {
	store := newStubUserStore()
	mailer := &stubMailer{}
	svc := newTestService(t, store, mailer)
	user := seedUser(t, store, "owner@alfa.com", "s3nh4forte", enums.UserRoleSeller, true)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if err := svc.ForgotPassword(context.Background(), "owner@alfa.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}

	saved := store.users[user.ID]
	if saved.ResetToken == nil || *saved.ResetToken == "" {
		t.Fatal("expected reset token stored")
	}
	if saved.ResetTokenExpiresAt == nil || !saved.ResetTokenExpiresAt.Equal(now.Add(2*time.Hour)) {
		t.Fatal("expected expiry two hours out")
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != *saved.ResetToken {
		t.Fatal("expected reset token mailed")
	}
}

func TestForgotPassword_UnknownEmailSilent(t *testing.T) {
	mailer := &stubMailer{}
	svc := newTestService(t, newStubUserStore(), mailer)

	if err := svc.ForgotPassword(context.Background(), "ghost@alfa.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("no email should be sent for unknown accounts")
	}
}

func TestResetPassword(t *testing.T) {
	store := newStubUserStore()
	svc := newTestService(t, store, &stubMailer{})
	user := seedUser(t, store, "owner@alfa.com", "antiga123", enums.UserRoleSeller, true)

	token := "a1b2c3d4e5f60718293a"
	expiry := time.Now().Add(time.Hour)
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiry

	if err := svc.ResetPassword(context.Background(), token, "novasenha123"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	saved := store.users[user.ID]
	if saved.ResetToken != nil || saved.ResetTokenExpiresAt != nil {
		t.Fatal("reset token should be cleared")
	}
	ok, err := security.VerifyPassword("novasenha123", saved.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new password should verify, ok=%v err=%v", ok, err)
	}

	// Token is single-use.
	err = svc.ResetPassword(context.Background(), token, "outrasenha123")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for consumed token, got %v", err)
	}
}

func TestResetPassword_Expired(t *testing.T) {
	store := newStubUserStore()
	svc := newTestService(t, store, &stubMailer{})
	user := seedUser(t, store, "owner@alfa.com", "antiga123", enums.UserRoleSeller, true)

	token := "deadbeefdeadbeefdead"
	expiry := time.Now().Add(-time.Minute)
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiry

	err := svc.ResetPassword(context.Background(), token, "novasenha123")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc := newTestService(t, newStubUserStore(), &stubMailer{})

	err := svc.ResetPassword(context.Background(), "sometoken", "curta")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
