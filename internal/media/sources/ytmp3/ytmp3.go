// Package ytmp3 turns a YouTube URL into a downloadable MP3 link through one
// of the public converter APIs. Their response shapes differ only in the name
// of the link field, so a single strategy type covers all of them; each
// endpoint is registered as its own strategy so the engine's ordering stays in
// charge of which converter gets tried first.
package ytmp3

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cypherbot/internal/media/sources"
	"cypherbot/internal/retrieve"
)

// linkFields are probed in order; converters answer with one of these keys.
var linkFields = []string{"link", "url", "downloadUrl", "direct_link", "dlink"}

// Converter is one MP3 conversion endpoint. Endpoint must contain a single
// %s placeholder for the video ID.
type Converter struct {
	name     string
	endpoint string
	client   *http.Client
}

func New(name, endpoint string) *Converter {
	return &Converter{
		name:     name,
		endpoint: endpoint,
		client:   sources.NewClient(12 * time.Second),
	}
}

func (c *Converter) Name() string { return c.name }

func (c *Converter) Attempt(ctx context.Context, target string) (*retrieve.Result, error) {
	videoID, err := sources.ExtractVideoID(target)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := sources.GetJSON(ctx, c.client, fmt.Sprintf(c.endpoint, videoID), &payload); err != nil {
		return nil, err
	}

	for _, field := range linkFields {
		if link, ok := payload[field].(string); ok && link != "" {
			res := &retrieve.Result{
				URL:  link,
				Kind: retrieve.KindAudio,
			}
			if title, ok := payload["title"].(string); ok {
				res.Title = title
			}
			return res, nil
		}
	}
	return nil, errors.New("converter response carried no download link")
}

// DefaultConverters is the ordered fallback list the play command uses after
// the native strategy.
func DefaultConverters() []retrieve.Strategy {
	return []retrieve.Strategy{
		New("ytmp3-rapid", "https://youtube-mp36.p.rapidapi.com/dl?id=%s"),
		New("ytmp3-vevioz", "https://api.vevioz.com/api/button/mp3/%s"),
		New("ytmp3-cc", "https://ytmp3.cc/api/button/mp3/%s"),
	}
}
