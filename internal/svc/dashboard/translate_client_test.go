package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hkato/wanidash/internal/svc/dashboard"
)

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	if _, ok := dashboard.NewTranslator(dashboard.TranslateConfig{}, nil).(dashboard.NopTranslator); !ok {
		t.Error("NewTranslator() without URL should return NopTranslator")
	}

	cfg := dashboard.TranslateConfig{URL: "http://localhost:9999/translate"}
	if _, ok := dashboard.NewTranslator(cfg, nil).(*dashboard.HTTPTranslator); !ok {
		t.Error("NewTranslator() with URL should return HTTPTranslator")
	}
}

func TestNopTranslator(t *testing.T) {
	t.Parallel()

	got, err := dashboard.NopTranslator{}.Translate(context.Background(), "sun")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "sun" {
		t.Errorf("Translate() = %q, want sun", got)
	}
}

func TestHTTPTranslator_Translate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text   string `json:"text"`
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Target != "fr" {
			t.Errorf("target = %q, want fr", req.Target)
		}

		//nolint:errchkjson
		_ = json.NewEncoder(w).Encode(map[string]string{"translation": "soleil"})
	}))
	t.Cleanup(srv.Close)

	tr := dashboard.NewHTTPTranslator(dashboard.TranslateConfig{URL: srv.URL, TargetLang: "fr"}, srv.Client())

	got, err := tr.Translate(context.Background(), "sun")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "soleil" {
		t.Errorf("Translate() = %q, want soleil", got)
	}
}

func TestHTTPTranslator_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			tr := dashboard.NewHTTPTranslator(dashboard.TranslateConfig{URL: srv.URL, TargetLang: "fr"}, srv.Client())

			if _, err := tr.Translate(context.Background(), "sun"); err == nil {
				t.Error("Translate() error = nil, want error")
			}
		})
	}
}
