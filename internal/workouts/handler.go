package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type usersRepo interface {
	FindByField(ctx context.Context, field users.Field, value string) (*users.User, error)
	AddWorkout(ctx context.Context, userID string, workout users.Workout) (*users.User, error)
}

// maxCount bounds sets and reps
const maxCount = 100_000

type DashboardResponse struct {
	User users.PublicUser `json:"user"`
}

type addWorkoutRequest struct {
	ExerciseName string        `json:"exerciseName"`
	Sets         pkg.FlexFloat `json:"sets"`
	Reps         pkg.FlexFloat `json:"reps"`
	Date         string        `json:"date"`
	Intensity    string        `json:"intensity"`
	Duration     pkg.FlexFloat `json:"duration"`
	Calories     pkg.FlexFloat `json:"calories"`
}

type Handler struct {
	repo           usersRepo
	analyzer       *Analyzer
	metricsManager *metrics.Manager
}

func NewHandler(repo usersRepo, analyzer *Analyzer, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		analyzer:       analyzer,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/dashboard", handler.handleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	mainRouter.HandleFunc("/api/dashboard/calories-by-day", handler.handleCaloriesByDay).Methods("GET", "OPTIONS").Name("calories-by-day")
	mainRouter.HandleFunc("/api/dashboard/stats", handler.handleStats).Methods("GET", "OPTIONS").Name("stats")
	mainRouter.HandleFunc("/api/add-workout", handler.handleAddWorkout).Methods("POST", "OPTIONS").Name("add-workout")
}

// currentUser loads the user the request was authenticated as. On failure the
// error response is already written.
func (handler *Handler) currentUser(ctx context.Context, w http.ResponseWriter) (*users.User, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return nil, false
	}

	user, err := handler.repo.FindByField(ctx, users.FieldID, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			pkg.WriteMessage(w, http.StatusNotFound, "User not found")
			return nil, false
		}
		log.Errorf("get user [%s]: %s", userID, err)
		pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return nil, false
	}

	return user, true
}

func (handler *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.dashboard")
	defer span.End()

	user, ok := handler.currentUser(ctx, w)
	if !ok {
		span.SetStatus(codes.Error, "no-user")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, DashboardResponse{User: user.Public()})
}

func (handler *Handler) handleCaloriesByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.caloriesByDay")
	defer span.End()

	user, ok := handler.currentUser(ctx, w)
	if !ok {
		span.SetStatus(codes.Error, "no-user")
		return
	}

	days := handler.analyzer.CaloriesByDay(user.Workouts)
	span.SetAttributes(attribute.Int("days", len(days)))

	pkg.WriteJSON(w, http.StatusOK, days)
}

func (handler *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.stats")
	defer span.End()

	user, ok := handler.currentUser(ctx, w)
	if !ok {
		span.SetStatus(codes.Error, "no-user")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, handler.analyzer.DashboardStats(user.Workouts))
}

func (handler *Handler) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.addWorkout")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req addWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("add workout, unmarshal json params: %s", err)
		pkg.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.ExerciseName = strings.TrimSpace(req.ExerciseName)
	if req.ExerciseName == "" {
		pkg.WriteMessage(w, http.StatusBadRequest, "Exercise name is required")
		return
	}
	if _, err := handler.analyzer.ParseDate(req.Date); err != nil {
		pkg.WriteMessage(w, http.StatusBadRequest, "Invalid workout date")
		return
	}
	if req.Duration < 0 || req.Calories < 0 || req.Sets < 0 || req.Reps < 0 {
		pkg.WriteMessage(w, http.StatusBadRequest, "Numeric fields cannot be negative")
		return
	}
	sets, setsOk := wholeCount(req.Sets)
	reps, repsOk := wholeCount(req.Reps)
	if !setsOk || !repsOk {
		pkg.WriteMessage(w, http.StatusBadRequest, "Sets and reps must be whole numbers")
		return
	}

	workout := users.Workout{
		ExerciseName: req.ExerciseName,
		Sets:         sets,
		Reps:         reps,
		Date:         strings.TrimSpace(req.Date),
		Intensity:    req.Intensity,
		Duration:     float64(req.Duration),
		Calories:     float64(req.Calories),
	}

	if _, err := handler.repo.AddWorkout(ctx, userID, workout); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			pkg.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Errorf("add workout for user [%s]: %s", userID, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutsAdded.Inc()
	}

	pkg.WriteMessage(w, http.StatusOK, "Workout added successfully")
}

// wholeCount converts a non-negative count, refusing fractions and values
// above maxCount.
func wholeCount(v pkg.FlexFloat) (int, bool) {
	f := float64(v)
	if f != math.Trunc(f) || f > maxCount {
		return 0, false
	}
	return int(f), true
}
