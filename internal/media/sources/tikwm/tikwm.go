// Package tikwm downloads TikTok videos through the tikwm.com API.
package tikwm

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

type Strategy struct {
	baseURL string
	client  *http.Client
	hd      bool
}

// New returns the standard-quality strategy; NewHD prefers the HD rendition.
// Registering both lets the engine fall back from HD to standard.
func New() *Strategy {
	return &Strategy{baseURL: "https://www.tikwm.com", client: sources.NewClient(20 * time.Second)}
}

func NewHD() *Strategy {
	return &Strategy{baseURL: "https://www.tikwm.com", client: sources.NewClient(20 * time.Second), hd: true}
}

func (s *Strategy) Name() string {
	if s.hd {
		return "tikwm-hd"
	}
	return "tikwm"
}

type apiResponse struct {
	Code int `json:"code"`
	Data struct {
		Play     string `json:"play"`
		HDPlay   string `json:"hdplay"`
		WMPlay   string `json:"wmplay"`
		Title    string `json:"title"`
		Duration int    `json:"duration"`
		Author   struct {
			Nickname string `json:"nickname"`
		} `json:"author"`
		DiggCount int `json:"digg_count"`
	} `json:"data"`
}

func (s *Strategy) Attempt(ctx context.Context, target string) (*retrieve.Result, error) {
	var resp apiResponse
	api := fmt.Sprintf("%s/api/?url=%s", s.baseURL, url.QueryEscape(target))
	if err := sources.GetJSON(ctx, s.client, api, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("tikwm error code %d", resp.Code)
	}

	link := resp.Data.Play
	quality := "sd"
	if s.hd && resp.Data.HDPlay != "" {
		link, quality = resp.Data.HDPlay, "hd"
	}
	if link == "" {
		link, quality = resp.Data.WMPlay, "watermarked"
	}
	if link == "" {
		return nil, errors.New("no playable rendition in response")
	}

	title := resp.Data.Title
	if resp.Data.Author.Nickname != "" {
		title = fmt.Sprintf("%s (@%s)", resp.Data.Title, resp.Data.Author.Nickname)
	}

	return &retrieve.Result{
		URL:         link,
		Kind:        retrieve.KindVideo,
		QualityHint: quality,
		Title:       title,
	}, nil
}
