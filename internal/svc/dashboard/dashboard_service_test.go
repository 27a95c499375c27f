package dashboard_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/hkato/wanidash/internal/repo/account"
	"github.com/hkato/wanidash/internal/svc/dashboard"
	"github.com/hkato/wanidash/internal/svc/mockapi"
)

// errTranslator always fails so the fallback path is exercised.
type errTranslator struct{}

func (errTranslator) Translate(_ context.Context, _ string) (string, error) {
	return "", errors.New("translation service down")
}

// startMockAPI serves the in-repo mock server as the dashboard's upstream.
func startMockAPI(t *testing.T) *httptest.Server {
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

	srv := httptest.NewServer(mockapi.NewHTTPTransport(
		accountSvc,
		mockapi.NewReviewService(),
		mockapi.HTTPTransportConfig{},
	))
	t.Cleanup(srv.Close)

	return srv
}

func TestService_BuildReportAgainstMockAPI(t *testing.T) {
	t.Parallel()

	srv := startMockAPI(t)

	client := dashboard.NewClient(dashboard.ClientConfig{BaseURL: srv.URL + "/v2/"}, "any-token", srv.Client())
	svc := dashboard.NewService(client, dashboard.NopTranslator{})

	report, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if report.KanjiLearned == 0 {
		t.Error("KanjiLearned = 0, want > 0")
	}
	if len(report.SRS) != 10 {
		t.Errorf("SRS has %d buckets, want 10", len(report.SRS))
	}
	if len(report.Kanji) == 0 {
		t.Fatal("no kanji study items")
	}

	// Sample subjects carry english meanings that survive the nop translator
	found := false
	for _, item := range report.Kanji {
		if item.Characters == "日" && item.Meaning == "sun" {
			found = true
		}
	}
	if !found {
		t.Errorf("kanji items = %+v, want 日/sun", report.Kanji)
	}
}

func TestService_BuildReportTranslationFallback(t *testing.T) {
	t.Parallel()

	srv := startMockAPI(t)

	client := dashboard.NewClient(dashboard.ClientConfig{BaseURL: srv.URL + "/v2/"}, "any-token", srv.Client())
	svc := dashboard.NewService(client, errTranslator{})

	report, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	// Failed translation keeps the untranslated meaning
	for _, item := range report.Vocabulary {
		if item.Characters == "本" && item.Meaning != "book" {
			t.Errorf("vocabulary meaning = %q, want untranslated book", item.Meaning)
		}
	}
}

func TestService_BuildReportUpstreamDown(t *testing.T) {
	t.Parallel()

	client := dashboard.NewClient(dashboard.ClientConfig{BaseURL: "http://127.0.0.1:1/"}, "t", nil)
	svc := dashboard.NewService(client, dashboard.NopTranslator{})

	if _, err := svc.BuildReport(context.Background()); err == nil {
		t.Fatal("BuildReport() error = nil, want error when upstream is unreachable")
	}
}
