// Package render produces stylized text images through external rendering
// services. Drawing primitives are not this bot's business; a renderer is just
// another retrieval strategy, so the fallback engine sequences these like any
// media source.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cypherbot/internal/media/sources"
	"cypherbot/internal/retrieve"
)

// MaxTextLength bounds the input; long text breaks every rendering service.
const MaxTextLength = 30

// Endpoint is one rendering service. Template takes the query-escaped text.
// Services either answer with raw image bytes or with a small JSON document
// pointing at the rendered asset; both shapes are handled.
type Endpoint struct {
	name     string
	template string
	client   *http.Client
}

func New(name, template string) *Endpoint {
	return &Endpoint{
		name:     name,
		template: template,
		client:   sources.NewClient(20 * time.Second),
	}
}

func (e *Endpoint) Name() string { return e.name }

func (e *Endpoint) Attempt(ctx context.Context, text string) (*retrieve.Result, error) {
	if len(text) > MaxTextLength {
		return nil, fmt.Errorf("text longer than %d characters", MaxTextLength)
	}

	target := fmt.Sprintf(e.template, url.QueryEscape(text))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", sources.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return &retrieve.Result{
			Data: body,
			Kind: retrieve.KindImage,
		}, nil
	}

	// JSON shape: {"result": "<image url>"} or {"url": "..."}.
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	for _, field := range []string{"result", "url", "image"} {
		if v, ok := payload[field].(string); ok && v != "" {
			return &retrieve.Result{URL: v, Kind: retrieve.KindImage}, nil
		}
	}
	return nil, errors.New("renderer response carried no image")
}

// DefaultEndpoints is the ordered renderer fallback list for the 3d command.
func DefaultEndpoints() []retrieve.Strategy {
	return []retrieve.Strategy{
		New("ephoto-3d", "https://api.lolhuman.xyz/api/ephoto1/3dtext?text=%s"),
		New("textpro-neon", "https://api.zahwazein.xyz/textprome/neonlight?text=%s"),
	}
}
