// Package invidious fetches audio stream URLs from an alternative YouTube
// frontend. Instances come and go, so each configured instance is its own
// strategy and the engine walks them in order.
package invidious

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cypherbot/internal/media/sources"
	"cypherbot/internal/retrieve"
)

type Instance struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Instance {
	return &Instance{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  sources.NewClient(12 * time.Second),
	}
}

func (i *Instance) Name() string {
	host := i.baseURL
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return "invidious:" + host
}

type videoResponse struct {
	Title        string `json:"title"`
	AudioStreams []struct {
		URL     string `json:"url"`
		Bitrate int    `json:"bitrate"`
	} `json:"audioStreams"`
	AdaptiveFormats []struct {
		URL      string `json:"url"`
		Bitrate  string `json:"bitrate"`
		AudioQty string `json:"audioQuality"`
		Type     string `json:"type"`
	} `json:"adaptiveFormats"`
}

func (i *Instance) Attempt(ctx context.Context, target string) (*retrieve.Result, error) {
	videoID, err := sources.ExtractVideoID(target)
	if err != nil {
		return nil, err
	}

	var resp videoResponse
	url := fmt.Sprintf("%s/api/v1/videos/%s", i.baseURL, videoID)
	if err := sources.GetJSON(ctx, i.client, url, &resp); err != nil {
		return nil, err
	}

	// Prefer explicit audio streams; pick the highest bitrate one.
	best := ""
	bestRate := -1
	for _, s := range resp.AudioStreams {
		if s.URL != "" && s.Bitrate > bestRate {
			best, bestRate = s.URL, s.Bitrate
		}
	}
	if best == "" {
		for _, f := range resp.AdaptiveFormats {
			if f.URL != "" && strings.HasPrefix(f.Type, "audio/") {
				best = f.URL
				break
			}
		}
	}
	if best == "" {
		return nil, errors.New("no audio streams in instance response")
	}

	return &retrieve.Result{
		URL:   best,
		Kind:  retrieve.KindAudio,
		Title: resp.Title,
	}, nil
}

// DefaultInstances is the ordered public-instance fallback list.
func DefaultInstances() []retrieve.Strategy {
	return []retrieve.Strategy{
		New("https://yewtu.be"),
		New("https://inv.nadeko.net"),
	}
}
