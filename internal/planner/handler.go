package planner

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type PlanResponse struct {
	Response string `json:"response"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/dietPlanner", handler.handleDietPlanner).Methods("POST", "OPTIONS").Name("diet-planner")
	mainRouter.HandleFunc("/api/exercise", handler.handleExercise).Methods("POST", "OPTIONS").Name("exercise-planner")
}

func (handler *Handler) handleDietPlanner(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "plannerHandler.diet")
	defer span.End()

	var req DietRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("diet planner, unmarshal json params: %s", err)
		pkg.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	span.SetAttributes(
		attribute.String("diet.type", req.DietType.String()),
		attribute.String("diet.goal", req.Goal.String()),
	)

	plan, err := DietPlan(req)
	if err != nil {
		log.Errorf("diet planner: %s", err)
		pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, PlanResponse{Response: plan})
}

func (handler *Handler) handleExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "plannerHandler.exercise")
	defer span.End()

	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("exercise planner, unmarshal json params: %s", err)
		pkg.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	span.SetAttributes(
		attribute.String("exercise.focus", req.Focus.String()),
		attribute.String("exercise.difficulty", req.Difficulty.String()),
	)

	plan, err := ExercisePlan(req)
	if err != nil {
		log.Errorf("exercise planner: %s", err)
		pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, PlanResponse{Response: plan})
}
