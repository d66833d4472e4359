package middleware

import (
	"context"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type AuthMiddlewareHandler struct {
	authenticator authenticator
	allowedPaths  map[string]bool
}

func NewAuthMiddlewareHandler(authenticator authenticator) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		authenticator: authenticator,
		allowedPaths: map[string]bool{
			"/": true,

			// register and login obviously cannot require a token
			"/api/auth/register": true,
			"/api/auth/login":    true,

			// planners
			"/api/dietPlanner": true,
			"/api/exercise":    true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := auth.BearerToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			userID, err := h.authenticator.Authenticate(ctx, token)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				pkg.WriteMessage(w, http.StatusUnauthorized, "Token is not valid")
				span.SetStatus(codes.Error, "invalid-token")
				span.RecordError(err)
				return
			}

			span.SetAttributes(attribute.String("user.id", userID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
