// Package ytnative resolves a direct audio stream URL through the YouTube
// player API via kkdai/youtube. This is the cheapest and most reliable path,
// so it goes first in the play strategy list.
package ytnative

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kkdai/youtube/v2"

	"cypherbot/internal/media/sources"
	"cypherbot/internal/retrieve"
)

type Strategy struct {
	client *youtube.Client
}

func New() *Strategy {
	return &Strategy{client: &youtube.Client{}}
}

func (s *Strategy) Name() string { return "youtube-native" }

// TimeoutHint stretches the engine default: the player API does two round
// trips (video info, then stream URL deciphering).
func (s *Strategy) TimeoutHint() time.Duration { return 20 * time.Second }

func (s *Strategy) Attempt(ctx context.Context, target string) (*retrieve.Result, error) {
	videoID, err := sources.ExtractVideoID(target)
	if err != nil {
		return nil, err
	}

	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("youtube client error: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, errors.New("no audio formats found for video")
	}

	link, err := s.client.GetStreamURLContext(ctx, video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("get stream URL error: %w", err)
	}

	return &retrieve.Result{
		URL:         link,
		Kind:        retrieve.KindAudio,
		QualityHint: formats[0].MimeType,
		Title:       video.Title,
	}, nil
}
