package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerd/ledgerd/internal/auth"
	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/repository"
)

// APIKeyHeader carries the credential on authenticated routes.
const APIKeyHeader = "X-API-Key"

// authChallenge names the scheme in the 401 challenge.
const authChallenge = "ApiKey"

// UserLookup resolves a presented API key to its owner.
// *repository.Repository satisfies it.
type UserLookup interface {
	GetUserByAPIKey(ctx context.Context, apiKey string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Users  UserLookup
}

// Auth returns a middleware that authenticates API requests.
// It reads the X-API-Key header, resolves it to a user by exact match
// and injects the user into the request context. A missing or unknown
// key yields 401; a store failure yields 503, never a silent 401.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_key"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			user, err := cfg.Users.GetUserByAPIKey(r.Context(), key)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "invalid_key"),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeAuthError(w)
					return
				}

				cfg.Logger.Error("store error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeUnavailableError(w)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response with the ApiKey
// challenge. The same message covers missing and invalid keys to
// prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", authChallenge)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing API key"}}`))
}

// writeUnavailableError writes a 503 when the credential store cannot
// be reached.
func writeUnavailableError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAVAILABLE","message":"Service temporarily unavailable"}}`))
}
