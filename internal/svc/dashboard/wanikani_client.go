package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hkato/wanidash/internal/domain"
	context_ "github.com/hkato/wanidash/internal/infra/context"
	"github.com/hkato/wanidash/internal/infra/logging"
)

const (
	TraceIDHeader       = "X-Request-ID"
	AuthorizationHeader = "Authorization"
)

// ErrUpstreamStatus is returned when the upstream API answers with a non-2xx
// status. Callers surface it to the user instead of crashing.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// ClientConfig holds configuration for the WaniKani API client.
type ClientConfig struct {
	// BaseURL is the upstream API base; WANIKANI_API_BASE overrides it,
	// which is how the dashboard is pointed at the mock server.
	BaseURL string `env:"API_BASE" default:"https://api.wanikani.com/v2/"`
}

// Client fetches study data from the WaniKani v2 API (or the mock server)
// using a bearer token.
type Client struct {
	httpClient *http.Client
	token      string
	log        logging.Logger
	cfg        ClientConfig
}

// NewClient creates a new Client with the given configuration and token.
// If httpClient is nil, http.DefaultClient will be used.
func NewClient(cfg ClientConfig, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	return &Client{
		httpClient: httpClient,
		token:      token,
		log:        logging.GetLogger("svc.dashboard.wanikani_client"),
		cfg:        cfg,
	}
}

// page is the collection envelope the v2 API wraps list responses in.
type page[T any] struct {
	Data  []T `json:"data"`
	Pages struct {
		NextURL string `json:"next_url"`
	} `json:"pages"`
}

// Assignments fetches all assignments for a subject type ("kanji",
// "vocabulary"), following pagination until the last page.
func (c *Client) Assignments(ctx context.Context, subjectType string) ([]domain.Assignment, error) {
	return c.collectAssignments(ctx, c.cfg.BaseURL+"assignments?subject_types="+url.QueryEscape(subjectType))
}

// AvailableLessons fetches the assignments that can be started as lessons
// right now, following pagination until the last page.
func (c *Client) AvailableLessons(ctx context.Context) ([]domain.Assignment, error) {
	return c.collectAssignments(ctx, c.cfg.BaseURL+"assignments?immediately_available_for_lessons=true")
}

func (c *Client) collectAssignments(ctx context.Context, pageURL string) ([]domain.Assignment, error) {
	var assignments []domain.Assignment

	for pageURL != "" {
		var result page[domain.Assignment]
		if err := c.get(ctx, pageURL, &result); err != nil {
			return nil, err
		}

		assignments = append(assignments, result.Data...)
		pageURL = result.Pages.NextURL
	}

	return assignments, nil
}

// Subjects fetches the subjects with the given IDs, keyed by ID.
// Returns an empty map when no IDs are requested.
func (c *Client) Subjects(ctx context.Context, ids []int) (map[int]domain.Subject, error) {
	subjects := make(map[int]domain.Subject, len(ids))

	if len(ids) == 0 {
		return subjects, nil
	}

	idStrs := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrs = append(idStrs, strconv.Itoa(id))
	}

	var result page[domain.Subject]
	if err := c.get(ctx, c.cfg.BaseURL+"subjects?ids="+strings.Join(idStrs, ","), &result); err != nil {
		return nil, err
	}

	for _, subject := range result.Data {
		subjects[subject.ID] = subject
	}

	return subjects, nil
}

// Summary fetches the upcoming-reviews digest.
func (c *Client) Summary(ctx context.Context) (domain.Summary, error) {
	var summary domain.Summary
	if err := c.get(ctx, c.cfg.BaseURL+"summary", &summary); err != nil {
		return domain.Summary{}, err
	}

	return summary, nil
}

func (c *Client) get(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	req.Header.Set(AuthorizationHeader, "Bearer "+c.token)

	if traceID, ok := context_.TraceIDFromContext(ctx); ok {
		req.Header.Set(TraceIDHeader, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", requestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned %d", ErrUpstreamStatus, requestURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", requestURL, err)
	}

	return nil
}
