package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	r := mux.NewRouter()
	NewHandler().SetupRoutes(r)

	req := httptest.NewRequest("POST", "/api/dietPlanner", strings.NewReader(
		`{"age":30,"gender":"Female","height":170,"weight":70,"targetWeight":65,"goal":"Weight Loss","dietType":"Vegan","mealTime":"2","question":""}`,
	))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "(30 years old, Female, 170cm, 70kg)")
	assert.Contains(t, resp.Response, "<p>Meal 2: Vegetable salad with tofu</p>")

	req = httptest.NewRequest("POST", "/api/exercise", strings.NewReader(
		`{"time":45,"difficulty":"Medium","focus":"Abs","training":"HIIT","equipment":"None"}`,
	))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "<h3>Abs HIIT Workout - Medium Intensity</h3>")
	assert.Contains(t, resp.Response, "for 45 minutes")

	for _, path := range []string{"/api/dietPlanner", "/api/exercise"} {
		req = httptest.NewRequest("POST", path, strings.NewReader(`{"age": [1, 2]}`))
		rr = httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}

	req = httptest.NewRequest("GET", "/api/exercise", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
