// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/casegrade/internal/httputil"
	"github.com/pdiddy/casegrade/pkg/types"
)

const defaultHTTPTimeout = 30 * time.Second

// nerRequest is the body posted to the NER service.
type nerRequest struct {
	Text string `json:"text"`
}

// nerResponse captures the fields we need from the NER service response.
type nerResponse struct {
	Entities []nerEntity `json:"entities"`
}

type nerEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// HTTP calls a remote NER service. Labels returned by the service are
// lowercased into entity categories.
type HTTP struct {
	client     *http.Client
	url        string
	apiKey     string
	userAgent  string
	maxRetries int
}

// NewHTTP returns an HTTP recogniser for cfg.URL.
func NewHTTP(cfg types.RecognizerConfig) (*HTTP, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("recognizer kind http requires recognizer.url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTP{
		client:     &http.Client{Timeout: timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Recognize posts text to the service and returns the spans it reports.
func (h *HTTP) Recognize(ctx context.Context, text string) ([]types.EntitySpan, error) {
	body, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encoding NER request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating NER request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, h.client, req, h.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("NER request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("NER service returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var nr nerResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing NER response: %w", err)
	}

	spans := make([]types.EntitySpan, 0, len(nr.Entities))
	for _, e := range nr.Entities {
		spans = append(spans, types.EntitySpan{
			Text:     e.Text,
			Category: types.NewEntityCategory(e.Label),
			Start:    e.Start,
			End:      e.End,
		})
	}
	return spans, nil
}
