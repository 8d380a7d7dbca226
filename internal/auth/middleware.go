package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/user"
)

// Authenticate resolves the bearer credential to exactly one account and
// attaches its id and role to the request context. Any failure terminates
// the request before further guards or handlers run.
func (s *service) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			userID, err := s.jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			existingUser, err := s.userService.GetUserByID(userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, user.ErrUserNotFound.Error())
					return
				}
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			ctx := context.WithValue(r.Context(), "userID", existingUser.ID)
			ctx = context.WithValue(ctx, "userRole", existingUser.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireWritePermission denies read-only accounts before the handler or
// query builder runs. Reads never pass through this guard.
func (s *service) RequireWritePermission() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value("userRole").(string)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !user.CanWrite(role) {
				writeJSONError(w, http.StatusForbidden, "Access denied. Read-only users cannot modify data")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUserManagement restricts the account-administration surface to
// admins.
func (s *service) RequireUserManagement() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value("userRole").(string)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !user.CanManageUsers(role) {
				writeJSONError(w, http.StatusForbidden, "Access denied. Admin privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
