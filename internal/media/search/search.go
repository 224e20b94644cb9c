// Package search looks up videos on the YouTube results page. It scrapes the
// embedded ytInitialData blob with regexes; there is no official API key in
// play and the page shape has been stable for years.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// VideoInfo is one search hit, in result order.
type VideoInfo struct {
	ID       string
	URL      string
	Title    string
	Duration string
	Channel  string
}

// Searcher is the lookup contract the commands consume.
type Searcher interface {
	Search(ctx context.Context, query string) ([]VideoInfo, error)
}

var (
	ErrNoResults = errors.New("no videos found for the given query")

	videoIDPattern  = regexp.MustCompile(`^"([a-zA-Z0-9_-]{11})"`)
	titlePattern    = regexp.MustCompile(`"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	durationPattern = regexp.MustCompile(`"lengthText":\{.*?"simpleText":"([0-9:]+)"`)
	channelPattern  = regexp.MustCompile(`"ownerText":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// YouTube scrapes the public results page.
type YouTube struct {
	BaseURL string
	Client  *http.Client
	Limit   int
}

func NewYouTube() *YouTube {
	return &YouTube{
		BaseURL: "https://www.youtube.com",
		Client:  &http.Client{Timeout: 10 * time.Second},
		Limit:   10,
	}
}

// Search returns up to Limit videos in page order.
func (y *YouTube) Search(ctx context.Context, query string) ([]VideoInfo, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", y.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := y.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed with status code %v", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	videos := y.parse(string(body))
	if len(videos) == 0 {
		return nil, ErrNoResults
	}
	return videos, nil
}

// parse walks the videoRenderer blocks of the results page. Each block starts
// right after `"videoRenderer":{"videoId":`, so splitting on that marker gives
// one chunk per hit with its title, duration and channel close behind.
func (y *YouTube) parse(body string) []VideoInfo {
	chunks := strings.Split(body, `"videoRenderer":{"videoId":`)
	if len(chunks) < 2 {
		return nil
	}

	limit := y.Limit
	if limit <= 0 {
		limit = 10
	}

	seen := map[string]bool{}
	var videos []VideoInfo
	for _, chunk := range chunks[1:] {
		idMatch := videoIDPattern.FindStringSubmatch(chunk)
		if idMatch == nil {
			continue
		}
		id := idMatch[1]
		if seen[id] {
			continue
		}
		seen[id] = true

		v := VideoInfo{
			ID:  id,
			URL: y.BaseURL + "/watch?v=" + id,
		}
		if m := titlePattern.FindStringSubmatch(chunk); m != nil {
			v.Title = unescape(m[1])
		}
		if m := durationPattern.FindStringSubmatch(chunk); m != nil {
			v.Duration = m[1]
		}
		if m := channelPattern.FindStringSubmatch(chunk); m != nil {
			v.Channel = unescape(m[1])
		}

		videos = append(videos, v)
		if len(videos) >= limit {
			break
		}
	}
	return videos
}

func unescape(s string) string {
	r := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\/`, `/`, `\u0026`, "&")
	return r.Replace(s)
}
