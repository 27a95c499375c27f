package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/hkato/wanidash/internal/domain"
	context_ "github.com/hkato/wanidash/internal/infra/context"
	"github.com/hkato/wanidash/internal/infra/logging"
	http_ "github.com/hkato/wanidash/internal/infra/transport/http"
)

var (
	// ErrNoUsername is returned when the username is missing from the request.
	ErrNoUsername = errors.New("no username")
	// ErrNoPassword is returned when the password is missing from the request.
	ErrNoPassword = errors.New("no password")
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// credentialsRequest is the JSON body shared by the signup and login endpoints.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HTTPTransport handles HTTP requests for the mock API.
// It provides signup, login, a bearer-protected revision-session endpoint and
// unprotected sample-data endpoints.
type HTTPTransport struct {
	accountSvc *AccountService
	reviewSvc  *ReviewService
	log        logging.Logger
	cfg        HTTPTransportConfig
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a new HTTPTransport instance with the given configuration.
func NewHTTPTransport(
	accountSvc *AccountService,
	reviewSvc *ReviewService,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	return &HTTPTransport{
		accountSvc: accountSvc,
		reviewSvc:  reviewSvc,
		log:        logging.GetLogger("svc.mockapi.http_transport"),
		cfg:        cfg,
	}
}

// ServeHTTP implements http.Handler and sets up routes for the mock API:
// - POST /signup: Create an account
// - POST /login: Login and get a bearer token
// - GET /v2/revision-session: Review session for the authenticated user
// - GET /v2/assignments, /v2/subjects, /v2/summary: Unprotected sample data.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", ht.HandleSignup)
	mux.HandleFunc("POST /login", ht.HandleLogin)
	mux.Handle("GET /v2/revision-session", http_.AuthorizingMiddleware(
		http.HandlerFunc(ht.HandleRevisionSession),
		ht.accountSvc.Sessions,
		ht.log,
	))
	mux.HandleFunc("GET /v2/assignments", ht.HandleAssignments)
	mux.HandleFunc("GET /v2/subjects", ht.HandleSubjects)
	mux.HandleFunc("GET /v2/summary", ht.HandleSummary)
	mux.ServeHTTP(w, r)
}

// HandleSignup processes account creation requests.
// Expects a JSON body with username and password.
func (ht *HTTPTransport) HandleSignup(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleSignup(w, r)
}

func (ht *HTTPTransport) handleSignup(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "signup failed", "error", err)
		} else {
			log.DebugContext(ctx, "account created")
		}
	}(r.Context())

	req, err := decodeCredentials(w, r)
	if err != nil {
		return err
	}

	log = log.With(logging.Group("account", "username", req.Username))

	if err := ht.accountSvc.Signup(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			http_.JSONError(w, "user already exists", http.StatusConflict)
		} else {
			http_.JSONError(w, "internal server error", http.StatusInternalServerError)
		}

		return fmt.Errorf("signup: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "created"}); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

// HandleLogin processes login requests.
// Expects a JSON body with username and password.
// Returns a bearer token on successful login.
func (ht *HTTPTransport) HandleLogin(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleLogin(w, r)
}

func (ht *HTTPTransport) handleLogin(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "login failed", "error", err)
		} else {
			log.DebugContext(ctx, "login successful")
		}
	}(r.Context())

	req, err := decodeCredentials(w, r)
	if err != nil {
		return err
	}

	log = log.With(logging.Group("account", "username", req.Username))

	token, err := ht.accountSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			http_.JSONError(w, "invalid credentials", http.StatusUnauthorized)
		} else {
			http_.JSONError(w, "internal server error", http.StatusInternalServerError)
		}

		return fmt.Errorf("login: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(domain.TokenResponse{AccessToken: token}); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

// HandleRevisionSession serves the protected review-session payload.
// The authorizing middleware has already validated the bearer token and put
// the username on the request context.
func (ht *HTTPTransport) HandleRevisionSession(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleRevisionSession(w, r)
}

func (ht *HTTPTransport) handleRevisionSession(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "revision session failed", "error", err)
		} else {
			log.DebugContext(ctx, "revision session served")
		}
	}(r.Context())

	username, ok := context_.UsernameFromContext(r.Context())
	if !ok {
		http_.JSONError(w, "unauthorized", http.StatusUnauthorized)

		return domain.ErrNoAuthToken
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ht.reviewSvc.Session(username)); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

// HandleAssignments serves the canned assignment list.
func (ht *HTTPTransport) HandleAssignments(w http.ResponseWriter, r *http.Request) {
	writeCollection(w, ht.reviewSvc.Assignments())
}

// HandleSubjects serves sample subjects filtered by the ids query parameter.
func (ht *HTTPTransport) HandleSubjects(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		http_.JSONError(w, "invalid ids parameter", http.StatusBadRequest)

		return
	}

	writeCollection(w, ht.reviewSvc.Subjects(ids))
}

// HandleSummary serves the upcoming-reviews digest.
func (ht *HTTPTransport) HandleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	//nolint:errchkjson
	_ = json.NewEncoder(w).Encode(ht.reviewSvc.Summary())
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http_.JSONError(w, "invalid request body", http.StatusBadRequest)

		return credentialsRequest{}, fmt.Errorf("decode body: %w", err)
	}

	if req.Username == "" {
		http_.JSONError(w, "username and password required", http.StatusBadRequest)

		return credentialsRequest{}, ErrNoUsername
	}

	if req.Password == "" {
		http_.JSONError(w, "username and password required", http.StatusBadRequest)

		return credentialsRequest{}, ErrNoPassword
	}

	return req, nil
}

func parseIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", part, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func writeCollection(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	//nolint:errchkjson
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}
