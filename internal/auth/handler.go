package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// SetupRoutes registers the /api/auth routes. The credentials middlewares
// (e.g. rate limiting) wrap only register and login.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, credentialsMiddlewares ...mux.MiddlewareFunc) {
	authRouter := mainRouter.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")

	credentialsRouter := authRouter.NewRoute().Subrouter()
	credentialsRouter.HandleFunc("/register", handler.handleRegister).Methods("POST", "OPTIONS").Name("register")
	credentialsRouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	credentialsRouter.Use(credentialsMiddlewares...)
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("register, unmarshal json params: %s", err)
		span.SetStatus(codes.Error, "bad-request")
		pkg.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := handler.service.Register(ctx, req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			pkg.WriteMessage(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, ErrMissingFields):
			pkg.WriteMessage(w, http.StatusBadRequest, "Name, email and password are required")
		default:
			log.Errorf("register user: %s", err)
			pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	pkg.WriteMessage(w, http.StatusCreated, "User registered successfully")
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("login, unmarshal json params: %s", err)
		pkg.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := handler.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			span.SetStatus(codes.Error, "invalid-credentials")
			pkg.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Errorf("login: %s", err)
		pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := handler.service.Logout(ctx, BearerToken(r)); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			pkg.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Errorf("logout: %s", err)
		pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	pkg.WriteMessage(w, http.StatusOK, "Logged out")
}
