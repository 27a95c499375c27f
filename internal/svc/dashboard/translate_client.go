package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hkato/wanidash/internal/infra/logging"
)

// Translator translates meaning text into the configured target language.
type Translator interface {
	// Translate returns the translation of text.
	// Callers fall back to the untranslated text on any error.
	Translate(ctx context.Context, text string) (string, error)
}

// TranslateConfig holds configuration for the translation client.
type TranslateConfig struct {
	// URL is the translation endpoint. Empty disables translation.
	URL string `env:"URL" default:""`

	// TargetLang is the language meanings are translated into
	TargetLang string `env:"TARGET_LANG" default:"fr"`
}

// NewTranslator creates a Translator for the given configuration.
// Returns a no-op translator when no endpoint is configured.
func NewTranslator(cfg TranslateConfig, httpClient *http.Client) Translator {
	if cfg.URL == "" {
		return NopTranslator{}
	}

	return NewHTTPTranslator(cfg, httpClient)
}

// NopTranslator returns every text unchanged.
type NopTranslator struct{}

var _ Translator = NopTranslator{}

// Translate implements Translator by returning the input.
func (NopTranslator) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

// HTTPTranslator implements Translator against an opaque HTTP translation
// service.
type HTTPTranslator struct {
	httpClient *http.Client
	log        logging.Logger
	cfg        TranslateConfig
}

var _ Translator = (*HTTPTranslator)(nil)

// NewHTTPTranslator creates a new HTTPTranslator with the given configuration.
// If httpClient is nil, http.DefaultClient will be used.
func NewHTTPTranslator(cfg TranslateConfig, httpClient *http.Client) *HTTPTranslator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPTranslator{
		httpClient: httpClient,
		log:        logging.GetLogger("svc.dashboard.translate_client"),
		cfg:        cfg,
	}
}

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// Translate implements Translator by posting the text to the configured
// endpoint. Returns an error on any transport or protocol failure; the
// caller keeps the original text in that case.
func (t *HTTPTranslator) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(translateRequest{Text: text, Target: t.cfg.TargetLang})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: translate returned %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return result.Translation, nil
}
