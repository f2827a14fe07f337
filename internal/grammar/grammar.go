// Package grammar adapts a remote LanguageTool-style checking service into a
// suggestion source. The adapter consumes only the first replacement
// candidate per service match and treats every transport or decode failure as
// an empty result: a dead service degrades suggestion completeness, it never
// aborts a pass.
package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
)

// Config holds the remote service settings.
type Config struct {
	BaseURL            string
	Language           string
	DisabledCategories []string
	Timeout            time.Duration
}

// DefaultConfig returns sensible defaults for a public LanguageTool endpoint.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:  baseURL,
		Language: "en-US",
		Timeout:  10 * time.Second,
	}
}

// Client talks to the remote grammar service.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a grammar client. A nil logger falls back to a no-op.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// response mirrors the service's wire format. Only the fields the adapter
// consumes are declared.
type response struct {
	Matches []struct {
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Message      string `json:"message"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
	} `json:"matches"`
}

// Check sends the full block text to the service and returns linear-offset
// matches. Failures of any kind return an error alongside zero matches; the
// engine records the source as unavailable and continues.
func (c *Client) Check(ctx context.Context, text string) ([]match.Match, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("grammar: no endpoint configured")
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.cfg.Language)
	if len(c.cfg.DisabledCategories) > 0 {
		form.Set("disabledCategories", strings.Join(c.cfg.DisabledCategories, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/v2/check",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("grammar: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("grammar: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grammar: service returned status %d", resp.StatusCode)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("grammar: parse response: %w", err)
	}

	out := make([]match.Match, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		if len(m.Replacements) == 0 || m.Length <= 0 {
			continue
		}
		out = append(out, match.Match{
			Start:       m.Offset,
			End:         m.Offset + m.Length,
			Replacement: m.Replacements[0].Value,
			Message:     m.Message,
			Source:      match.SourceGrammar,
		})
	}
	c.logger.Debug("grammar service responded",
		zap.Int("raw_matches", len(parsed.Matches)),
		zap.Int("usable", len(out)))
	return out, nil
}
