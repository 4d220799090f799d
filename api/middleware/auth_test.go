package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/orderhub/orderhub-backend/pkg/auth"
	"github.com/orderhub/orderhub-backend/pkg/config"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "orderhub", ExpirationMinutes: 30}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	sellerID := uuid.New()
	customerID := uuid.New()

	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID:     userID,
		Role:       enums.UserRoleCustomer,
		SellerID:   &sellerID,
		CustomerID: &customerID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seen bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = true
		if got, ok := UserIDFromContext(r.Context()); !ok || got != userID {
			t.Fatalf("user id missing from context, got %v", got)
		}
		if RoleFromContext(r.Context()) != "customer" {
			t.Fatalf("unexpected role %q", RoleFromContext(r.Context()))
		}
		if got, ok := SellerIDFromContext(r.Context()); !ok || got != sellerID {
			t.Fatal("seller scope missing from context")
		}
		if got, ok := CustomerIDFromContext(r.Context()); !ok || got != customerID {
			t.Fatal("customer scope missing from context")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()

	Auth(testJWTConfig(), testLogger())(next).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !seen {
		t.Fatal("next handler not reached")
	}
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})
	handler := Auth(testJWTConfig(), testLogger())(next)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 got %d", resp.Code)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRoles(testLogger(), enums.UserRoleSeller, enums.UserRoleCustomer)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req = req.WithContext(WithRole(req.Context(), "seller"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("seller should pass, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req = req.WithContext(WithRole(req.Context(), "admin"))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("admin should be rejected, got %d", resp.Code)
	}
}
