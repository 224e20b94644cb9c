// Package profile holds the profile-picture and profile-info commands. The
// picture lookup rides the retrieval engine: each image quality the platform
// exposes is one strategy, so privacy-restricted full images degrade to the
// preview before the lookup counts as failed.
package profile

import (
	"context"

	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

// avatarStrategy asks the transport for one quality of a user's picture. The
// target handed to the engine is the user JID.
type avatarStrategy struct {
	transport platform.Transport
	quality   platform.ImageQuality
}

func (s *avatarStrategy) Name() string { return "avatar-" + string(s.quality) }

func (s *avatarStrategy) Attempt(ctx context.Context, target string) (*retrieve.Result, error) {
	url, err := s.transport.ProfileImageURL(ctx, target, s.quality)
	if err != nil {
		return nil, err
	}
	return &retrieve.Result{
		URL:         url,
		Kind:        retrieve.KindImage,
		QualityHint: string(s.quality),
	}, nil
}

// avatarStrategies is the ordered list: full image first, preview fallback.
func avatarStrategies(t platform.Transport) []retrieve.Strategy {
	return []retrieve.Strategy{
		&avatarStrategy{transport: t, quality: platform.QualityFull},
		&avatarStrategy{transport: t, quality: platform.QualityPreview},
	}
}
