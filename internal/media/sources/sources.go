// Package sources holds the helpers shared by the concrete retrieval
// strategies: YouTube ID extraction and a plain HTTP client with the headers
// scraping endpoints expect.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var (
	ytIDPattern   = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

var ErrNoVideoID = errors.New("could not extract a video ID from URL")

// ExtractVideoID pulls the 11-character video ID out of any common YouTube
// URL shape. Bare IDs pass through unchanged.
func ExtractVideoID(input string) (string, error) {
	if m := ytIDPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(input) {
		return input, nil
	}
	return "", ErrNoVideoID
}

// NewClient returns an HTTP client with the given timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// GetJSON fetches a URL and decodes the JSON body into out.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
