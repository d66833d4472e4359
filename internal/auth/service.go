package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth_test

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrMissingFields      = errors.New("missing required fields")
)

type usersRepo interface {
	FindByField(ctx context.Context, field users.Field, value string) (*users.User, error)
	Insert(ctx context.Context, user users.User) (*users.User, error)
}

type tokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Service struct {
	repo           usersRepo
	tokens         *Tokens
	revoker        tokenRevoker
	metricsManager *metrics.Manager

	checkPassword func(password, hash string) bool
	// checked against when the email is unknown
	dummyHashOnce sync.Once
	dummyHash     string
}

// NewService creates the auth service. revoker can be nil, in which case
// logout does nothing and tokens stay valid until they expire.
func NewService(
	repo usersRepo,
	tokens *Tokens,
	revoker tokenRevoker,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		tokens:         tokens,
		revoker:        revoker,
		metricsManager: metricsManager,
		checkPassword:  pkg.CheckPasswordHash,
	}
}

func (s *Service) unknownUserHash() string {
	s.dummyHashOnce.Do(func() {
		hash, err := pkg.HashPassword("fittrack-unknown-user")
		if err != nil {
			log.Errorf("auth service: dummy password hash: %s", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *Service) Register(ctx context.Context, name, email, password string) (_ *users.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.register")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.FindByField(ctx, users.FieldEmail, email)
	if err == nil && existing != nil {
		return nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user, err := s.repo.Insert(ctx, users.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Workouts:  []users.Workout{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterRegistrations.Inc()
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	log.Debugf("auth service: user [%s] registered", user.ID)

	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.login")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	defer func() {
		if s.metricsManager == nil {
			return
		}
		result := "ok"
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			result = "invalid_credentials"
		case err != nil:
			result = "error"
		}
		s.metricsManager.CounterLogins.With(prometheus.Labels{"result": result}).Inc()
	}()

	user, err := s.repo.FindByField(ctx, users.FieldEmail, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.checkPassword(password, s.unknownUserHash())
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if !s.checkPassword(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return token, nil
}

// Authenticate returns the id of the user the token was issued to.
func (s *Service) Authenticate(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.authenticate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if s.revoker != nil && claims.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return "", fmt.Errorf("%w: revocation check: %w", ErrUnauthenticated, err)
		}
		if revoked {
			return "", fmt.Errorf("%w: token revoked", ErrUnauthenticated)
		}
	}

	return claims.UserID, nil
}

func (s *Service) Logout(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.logout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if s.revoker == nil {
		log.Debugln("auth service: no revoker set, logout is a no-op")
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.tokens.Now())
	if err := s.revoker.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}
