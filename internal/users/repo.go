package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
	ErrUnknownField = errors.New("unknown user field")
)

type Field string

const (
	FieldID    Field = "id"
	FieldEmail Field = "email"
)

// Repo implements user and workout operations on top of a whole-collection Store.
// Every operation is a single load(-modify-save) cycle under one mutex, so
// concurrent requests in this process never lose each other's writes.
type Repo struct {
	store          Store
	metricsManager *metrics.Manager

	mu sync.Mutex
}

func NewRepo(store Store, metricsManager *metrics.Manager) *Repo {
	return &Repo{
		store:          store,
		metricsManager: metricsManager,
	}
}

func (r *Repo) load(ctx context.Context) ([]User, error) {
	start := time.Now()
	users, err := r.store.Load(ctx)
	r.observe("load", start)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (r *Repo) save(ctx context.Context, users []User) error {
	start := time.Now()
	err := r.store.Save(ctx, users)
	r.observe("save", start)
	if err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *Repo) observe(op string, start time.Time) {
	if r.metricsManager == nil {
		return
	}
	r.metricsManager.HistogramStoreOpDuration.
		With(prometheus.Labels{"op": op}).
		Observe(time.Since(start).Seconds())
}

func indexBy(users []User, field Field, value string) (int, error) {
	var get func(u *User) string
	switch field {
	case FieldID:
		get = func(u *User) string { return u.ID }
	case FieldEmail:
		get = func(u *User) string { return u.Email }
	default:
		return -1, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	for i := range users {
		if get(&users[i]) == value {
			return i, nil
		}
	}
	return -1, ErrUserNotFound
}

// FindByField returns the first user whose field equals value.
func (r *Repo) FindByField(ctx context.Context, field Field, value string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.findByField")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("field", string(field)))

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, err := indexBy(users, field, value)
	if err != nil {
		return nil, err
	}

	u := users[i]
	return &u, nil
}

// Insert appends the user to the collection. ID and timestamps are filled in
// when missing.
func (r *Repo) Insert(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.insert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := indexBy(users, FieldEmail, user.Email); err == nil {
		return nil, ErrEmailTaken
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Workouts == nil {
		user.Workouts = []Workout{}
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if user.UpdatedAt == "" {
		user.UpdatedAt = user.CreatedAt
	}

	users = append(users, user)
	if err := r.save(ctx, users); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return &user, nil
}

// Update merges the non-nil patch fields into the stored user.
func (r *Repo) Update(ctx context.Context, id string, patch UserPatch) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, err := indexBy(users, FieldID, id)
	if err != nil {
		return nil, err
	}

	patch.apply(&users[i])
	if err := r.save(ctx, users); err != nil {
		return nil, err
	}

	u := users[i].clone()
	return &u, nil
}

// AddWorkout appends the workout to the user's list, assigning it a fresh ID.
func (r *Repo) AddWorkout(ctx context.Context, userID string, workout Workout) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.addWorkout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user.id", userID))

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, err := indexBy(users, FieldID, userID)
	if err != nil {
		return nil, err
	}

	workout.ID = uuid.NewString()
	if users[i].Workouts == nil {
		users[i].Workouts = []Workout{}
	}
	users[i].Workouts = append(users[i].Workouts, workout)

	if err := r.save(ctx, users); err != nil {
		return nil, err
	}

	u := users[i].clone()
	return &u, nil
}
