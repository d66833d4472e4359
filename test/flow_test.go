//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path, token, clientIP string,
	body any,
) (int, []byte) {
	var reqBody bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, &reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if clientIP != "" {
		req.Header.Set("X-Real-Ip", clientIP)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) message(respBytes []byte) string {
	var msg messageResponse
	s.Require().NoError(json.Unmarshal(respBytes, &msg))
	return msg.Message
}

func (s *IntegrationTestSuite) TestRegisterLoginWorkoutsLogout() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientIP := "10.0.0.1"
	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	status, respBytes := s.doRequest(ctx, http.MethodPost, "/api/auth/register", "", clientIP, map[string]string{
		"name":     "Integration User",
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusCreated, status)
	s.Equal("User registered successfully", s.message(respBytes))

	status, respBytes = s.doRequest(ctx, http.MethodPost, "/api/auth/login", "", clientIP, map[string]string{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, status)
	var loginResp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(respBytes, &loginResp))
	token := loginResp.Token
	s.Require().NotEmpty(token)

	for _, calories := range []float64{5, 7.5} {
		status, respBytes = s.doRequest(ctx, http.MethodPost, "/api/add-workout", token, clientIP, map[string]any{
			"exerciseName": "Rowing",
			"sets":         3,
			"reps":         10,
			"date":         "2024-01-01",
			"intensity":    "Medium",
			"duration":     20,
			"calories":     calories,
		})
		s.Require().Equal(http.StatusOK, status, string(respBytes))
	}

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/api/dashboard/calories-by-day", token, clientIP, nil)
	s.Require().Equal(http.StatusOK, status)
	var days []workouts.DayCalories
	s.Require().NoError(json.Unmarshal(respBytes, &days))
	s.Equal([]workouts.DayCalories{{Date: "2024-01-01", Calories: 250}}, days)

	// the users collection lives in postgres as a single JSONB document
	var data []byte
	s.Require().NoError(s.DB.QueryRowContext(
		ctx,
		`SELECT data FROM user_collection WHERE name = $1`,
		"users",
	).Scan(&data))
	var stored []users.User
	s.Require().NoError(json.Unmarshal(data, &stored))
	var found *users.User
	for i := range stored {
		if stored[i].Email == email {
			found = &stored[i]
		}
	}
	s.Require().NotNil(found)
	s.Len(found.Workouts, 2)
	s.NotEqual(password, found.Password)

	status, respBytes = s.doRequest(ctx, http.MethodPost, "/api/auth/logout", token, clientIP, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("Logged out", s.message(respBytes))

	// token revoked in redis
	status, respBytes = s.doRequest(ctx, http.MethodGet, "/api/dashboard", token, clientIP, nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("Token is not valid", s.message(respBytes))
}

func (s *IntegrationTestSuite) TestLoginRateLimit() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientIP := "10.0.0.2"
	for i := 0; i < testLoginsPerMin; i++ {
		status, _ := s.doRequest(ctx, http.MethodPost, "/api/auth/login", "", clientIP, map[string]string{
			"email":    "nobody@example.com",
			"password": "nope",
		})
		s.Require().Equal(http.StatusBadRequest, status)
	}

	status, respBytes := s.doRequest(ctx, http.MethodPost, "/api/auth/login", "", clientIP, map[string]string{
		"email":    "nobody@example.com",
		"password": "nope",
	})
	s.Equal(http.StatusTooManyRequests, status)
	s.Contains(s.message(respBytes), "Too many requests, retry after")

	// other clients are not affected
	status, _ = s.doRequest(ctx, http.MethodPost, "/api/auth/login", "", "10.0.0.3", map[string]string{
		"email":    "nobody@example.com",
		"password": "nope",
	})
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestPlannersAndMetrics() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, respBytes := s.doRequest(ctx, http.MethodPost, "/api/exercise", "", "10.0.0.4", map[string]any{
		"focus":      "Strength",
		"difficulty": "Medium",
		"time":       45,
	})
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(respBytes), "Cool Down")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metricsEndpoint, nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	metricsBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(metricsBytes), "fittrack_main_request_duration_seconds")
	s.Contains(string(metricsBytes), "pgxpool_")
}
