package middleware

import (
	"net/http"

	"storefront-be/internal/apperror"
	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

var (
	errInvalidToken = apperror.Unauthorized("Invalid or Expired Token")
	errNotAuthed    = apperror.Unauthorized("Not Authorized, token missing")
	errAdminOnly    = apperror.Forbidden("Admin access required")
)

// AuthMiddleware puts the token's user into the request context. Requests
// without a token pass through anonymously; a bad token is rejected.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseJWT(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected token", zap.Error(err))
				utils.WriteError(w, errInvalidToken)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			ctx = logger.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteError(w, errNotAuthed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsAdmin(r.Context()) {
			userID, _ := utils.GetUserIDFromContext(r.Context())
			logger.FromCtx(r.Context()).Warn("admin route denied", zap.Uint("user_id", userID))
			utils.WriteError(w, errAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
