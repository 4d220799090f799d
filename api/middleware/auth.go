package middleware

import (
	"net/http"
	"strings"

	"github.com/orderhub/orderhub-backend/api/responses"
	pkgauth "github.com/orderhub/orderhub-backend/pkg/auth"
	"github.com/orderhub/orderhub-backend/pkg/config"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithRole(ctx, claims.Role.String())
			if claims.SellerID != nil {
				ctx = WithSellerID(ctx, *claims.SellerID)
			}
			if claims.CustomerID != nil {
				ctx = WithCustomerID(ctx, *claims.CustomerID)
			}

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				if claims.SellerID != nil {
					ctx = logg.WithSellerID(ctx, claims.SellerID.String())
				}
				if claims.CustomerID != nil {
					ctx = logg.WithCustomerID(ctx, claims.CustomerID.String())
				}
				ctx = logg.WithField(ctx, "actor_role", claims.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
