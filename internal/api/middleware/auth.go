package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, string, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth rejects requests without a valid bearer token
func Auth(authenticator Authenticator, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
				return
			}

			actor, tokenID, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, users.ErrUnauthorized) {
					handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
					return
				}
				logger.Error("Auth: failed to authenticate: %v", err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor, tokenID)))
		})
	}
}

// RequireRoles lets through only the listed roles; must run after Auth
func RequireRoles(roles ...domain.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, handlers.MsgForbidden)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
