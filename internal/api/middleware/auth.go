package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Parth2500/Jwt-Auth/internal/common"
	"github.com/Parth2500/Jwt-Auth/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const ClaimsCtxKey contextKey = "claims"

// TokenVerifier is satisfied by *security.TokenIssuer.
type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

// Authenticator rejects requests without a valid bearer token and puts the
// verified claims in the request context.
//
//	missing token  -> 401 "Authorization token required"
//	expired token  -> 401 "Token expired"
//	anything else  -> 403 "Invalid token"
func Authenticator(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.Verify(jwtauth.TokenFromHeader(r))
			if err != nil {
				status := common.HTTPStatusFromError(err)
				switch {
				case errors.Is(err, common.ErrTokenMissing):
					common.RespondWithError(w, status, "Authorization token required")
				case errors.Is(err, common.ErrTokenExpired):
					common.RespondWithError(w, status, "Token expired")
				default:
					log.Printf("WARN: rejected bearer token: %v", err)
					common.RespondWithError(w, http.StatusForbidden, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get the verified claims from context
func GetClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*security.Claims)
	return claims, ok
}
