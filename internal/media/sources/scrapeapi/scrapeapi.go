// Package scrapeapi covers the long tail of "paste a link, get a JSON blob
// with a media URL" downloader services used for Instagram and Snapchat. The
// services are interchangeable glue; one configurable strategy type plus
// per-provider endpoint lists replaces a copy of this code per provider.
package scrapeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cypherbot/internal/media/sources"
	"cypherbot/internal/retrieve"
)

// Endpoint is one downloader service. Template must contain a single %s
// placeholder for the query-escaped target URL.
type Endpoint struct {
	name     string
	template string
	kind     retrieve.MediaKind // default kind when the response does not say
	client   *http.Client
}

func New(name, template string, kind retrieve.MediaKind) *Endpoint {
	return &Endpoint{
		name:     name,
		template: template,
		kind:     kind,
		client:   sources.NewClient(15 * time.Second),
	}
}

func (e *Endpoint) Name() string { return e.name }

// mediaFields are probed in order across the known response shapes.
var mediaFields = []string{"url", "videoUrl", "video_url", "download_url", "media", "link"}

func (e *Endpoint) Attempt(ctx context.Context, target string) (*retrieve.Result, error) {
	var payload map[string]any
	api := fmt.Sprintf(e.template, url.QueryEscape(target))
	if err := sources.GetJSON(ctx, e.client, api, &payload); err != nil {
		return nil, err
	}

	// Some services nest the useful part under "data".
	if data, ok := payload["data"].(map[string]any); ok {
		payload = data
	}

	link := ""
	for _, field := range mediaFields {
		if v, ok := payload[field].(string); ok && v != "" {
			link = v
			break
		}
		// Carousel shape: first entry of a media list.
		if list, ok := payload[field].([]any); ok && len(list) > 0 {
			if v, ok := list[0].(string); ok && v != "" {
				link = v
				break
			}
			if m, ok := list[0].(map[string]any); ok {
				if v, ok := m["url"].(string); ok && v != "" {
					link = v
					break
				}
			}
		}
	}
	if link == "" {
		return nil, errors.New("service response carried no media URL")
	}

	kind := e.kind
	if t, ok := payload["type"].(string); ok {
		switch t {
		case "image", "photo":
			kind = retrieve.KindImage
		case "video", "reel":
			kind = retrieve.KindVideo
		}
	}

	res := &retrieve.Result{URL: link, Kind: kind}
	if caption, ok := payload["caption"].(string); ok {
		res.Title = caption
	} else if title, ok := payload["title"].(string); ok {
		res.Title = title
	}
	return res, nil
}

// InstagramEndpoints is the ordered fallback list for Instagram posts, reels
// and stories.
func InstagramEndpoints() []retrieve.Strategy {
	return []retrieve.Strategy{
		New("igram", "https://api.igram.world/api/convert?url=%s", retrieve.KindVideo),
		New("instasave", "https://instasave.website/api/media?url=%s", retrieve.KindVideo),
		New("saveig", "https://saveig.app/api/ajaxSearch?q=%s", retrieve.KindImage),
	}
}

// SnapchatEndpoints is the ordered fallback list for Snapchat spotlight and
// story links.
func SnapchatEndpoints() []retrieve.Strategy {
	return []retrieve.Strategy{
		New("snapdl", "https://snapdownloader.com/api/download?url=%s", retrieve.KindVideo),
		New("snapsave", "https://snapsave.io/api/media?url=%s", retrieve.KindVideo),
	}
}
