package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/nimish-23/user-account-service/internal/jwt"
	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/models"
)

// Tokener defines the token operations needed by the access gate.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RevocationChecker reports whether a token id has been denylisted.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error)
}

// UserFinder resolves a token subject to a user record.
type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

type contextKey struct{ name string }

var (
	userKey  = contextKey{"user"}
	tokenKey = contextKey{"token"}
)

// SetUserToContext stores the resolved caller in the context.
func SetUserToContext(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the resolved caller, or nil outside the gate.
func GetUserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey).(*models.UserDB)
	return user
}

// SetTokenToContext stores the raw bearer token in the context.
func SetTokenToContext(ctx context.Context, tokenString string) context.Context {
	return context.WithValue(ctx, tokenKey, tokenString)
}

// GetTokenFromContext returns the raw bearer token, or "" outside the gate.
func GetTokenFromContext(ctx context.Context) string {
	tokenString, _ := ctx.Value(tokenKey).(string)
	return tokenString
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// AuthMiddleware returns the access-control gate. It extracts the bearer
// token, verifies signature and expiry, rejects revoked tokens, and resolves
// the subject against the user directory. A token whose user no longer
// exists is dead even though its signature is still valid. The resolved user
// and the raw token are exposed to downstream handlers via the context.
func AuthMiddleware(tokener Tokener, revocations RevocationChecker, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			revoked, err := revocations.IsRevoked(ctx, claims.TokenID)
			if err != nil {
				logger.Log.Errorw("revocation check failed", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if revoked {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := users.GetByID(ctx, claims.UserID)
			if err != nil {
				logger.Log.Errorw("failed to resolve token subject", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx = SetUserToContext(ctx, user)
			ctx = SetTokenToContext(ctx, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates an operation on the caller's admin flag. It must run
// after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !user.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
