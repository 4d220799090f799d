package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/orderhub/orderhub-backend/api/responses"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy throttles an auth surface with fixed windows, counted
// per client IP and per submitted account email.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "auth"
	}
	return AuthRateLimitPolicy{
		name:       name,
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// AuthRateLimit counts attempts in the shared store and rejects requests over
// either limit. The IP check runs first so flooded endpoints never read the
// request body. Emails are hashed before they become store keys or log fields.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if policy.ipLimit > 0 {
				ip := clientIP(r)
				if ip != "" {
					if done := checkWindow(ctx, logg, w, store, policy, "ip", ip, policy.ipLimit); done {
						return
					}
				}
			}

			if policy.emailLimit > 0 {
				email, ok := peekEmail(ctx, w, r)
				if !ok {
					return
				}
				if email != "" {
					if done := checkWindow(ctx, logg, w, store, policy, "email", hashValue(email), policy.emailLimit); done {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkWindow counts the attempt in the store and writes the 429 (or a
// dependency error) itself. Returns true when the response is already written.
func checkWindow(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, store rateLimiterStore, policy AuthRateLimitPolicy, scope, subject string, limit int) bool {
	windowScope := fmt.Sprintf("%s:%s:%s", policy.name, scope, subject)
	allowed, count, err := store.FixedWindowAllow(ctx, windowScope, int64(limit), policy.window)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return true
	}
	if allowed {
		return false
	}

	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"subject":        subject,
			"policy":         policy.name,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
	return true
}

// peekEmail reads the JSON body for its email field and restores r.Body for
// the downstream handler. A false return means an error response was written.
func peekEmail(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
		return "", false
	}
	r.Body = io.NopCloser(bytes.NewReader(payload))

	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", true
	}
	return strings.ToLower(strings.TrimSpace(body.Email)), true
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
