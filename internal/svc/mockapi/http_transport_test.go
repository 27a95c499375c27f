package mockapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hkato/wanidash/internal/domain"
	"github.com/hkato/wanidash/internal/repo/account"
	"github.com/hkato/wanidash/internal/svc/mockapi"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	accountSvc, err := mockapi.NewAccountService(
		func() (account.Repository, error) {
			return account.NewMemoryAccountRepository(), nil
		},
		mockapi.NewSessionRegistry(),
	)
	if err != nil {
		t.Fatalf("NewAccountService() error = %v", err)
	}
	t.Cleanup(func() { _ = accountSvc.Close() })

	transport := mockapi.NewHTTPTransport(accountSvc, mockapi.NewReviewService(), mockapi.HTTPTransportConfig{})

	srv := httptest.NewServer(transport)
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}

	return resp
}

func getWithAuth(t *testing.T, url, authHeader string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}

	return resp
}

func TestHTTPTransport_SignupLoginReviewFlow(t *testing.T) {
	t.Parallel()

	srv := setupTestServer(t)

	// Signup succeeds
	resp := postJSON(t, srv.URL+"/signup", `{"username":"demo","password":"demo"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	resp.Body.Close()
	if created["status"] != "created" {
		t.Errorf("signup response = %v, want status created", created)
	}

	// Duplicate signup conflicts
	resp = postJSON(t, srv.URL+"/signup", `{"username":"demo","password":"demo"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	// Login returns a token
	resp = postJSON(t, srv.URL+"/login", `{"username":"demo","password":"demo"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var tokenResp domain.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	resp.Body.Close()
	if tokenResp.AccessToken == "" {
		t.Fatal("login returned empty access_token")
	}

	// Token authorizes the protected route
	resp = getWithAuth(t, srv.URL+"/v2/revision-session", "Bearer "+tokenResp.AccessToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("revision-session status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var session domain.ReviewSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	resp.Body.Close()
	if session.User != "demo" {
		t.Errorf("session user = %q, want demo", session.User)
	}
	if session.Subject.ID == 0 || session.Subject.Data.Characters == "" {
		t.Errorf("session subject incomplete: %+v", session.Subject)
	}

	// Same call without header is unauthorized
	resp = getWithAuth(t, srv.URL+"/v2/revision-session", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing header status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestHTTPTransport_SignupValidation(t *testing.T) {
	t.Parallel()

	srv := setupTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing username", body: `{"password":"pw"}`, want: http.StatusBadRequest},
		{name: "missing password", body: `{"username":"u"}`, want: http.StatusBadRequest},
		{name: "malformed body", body: `{`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := postJSON(t, srv.URL+"/signup", tt.body)
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("signup status = %d, want %d", resp.StatusCode, tt.want)
			}

			var errBody map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if errBody["error"] == "" {
				t.Error("error body missing error message")
			}
		})
	}
}

func TestHTTPTransport_LoginFailures(t *testing.T) {
	t.Parallel()

	srv := setupTestServer(t)

	resp := postJSON(t, srv.URL+"/signup", `{"username":"demo","password":"demo"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "wrong password", body: `{"username":"demo","password":"nope"}`, want: http.StatusUnauthorized},
		{name: "unknown username", body: `{"username":"ghost","password":"demo"}`, want: http.StatusUnauthorized},
		{name: "missing fields", body: `{}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := postJSON(t, srv.URL+"/login", tt.body)
			resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("login status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestHTTPTransport_RevisionSessionUnauthorized(t *testing.T) {
	t.Parallel()

	srv := setupTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := getWithAuth(t, srv.URL+"/v2/revision-session", tt.header)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
		})
	}
}

func TestHTTPTransport_SampleData(t *testing.T) {
	t.Parallel()

	srv := setupTestServer(t)

	t.Run("assignments", func(t *testing.T) {
		t.Parallel()

		resp := getWithAuth(t, srv.URL+"/v2/assignments", "")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var body struct {
			Data []domain.Assignment `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Data) == 0 {
			t.Error("no assignments returned")
		}
	})

	t.Run("subjects filtered by ids", func(t *testing.T) {
		t.Parallel()

		resp := getWithAuth(t, srv.URL+"/v2/subjects?ids=1,99", "")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var body struct {
			Data []domain.Subject `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Data) != 1 || body.Data[0].ID != 1 {
			t.Errorf("subjects = %+v, want only subject 1", body.Data)
		}
	})

	t.Run("subjects with bad ids", func(t *testing.T) {
		t.Parallel()

		resp := getWithAuth(t, srv.URL+"/v2/subjects?ids=abc", "")
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		resp := getWithAuth(t, srv.URL+"/v2/summary", "")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var summary domain.Summary
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(summary.Data.Reviews.Upcoming) == 0 {
			t.Error("summary has no upcoming reviews")
		}
	})
}
