package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cypherbot/internal/command"
	"cypherbot/internal/config"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

// profileTransport serves canned profile-image URLs per quality and records
// everything sent out.
type profileTransport struct {
	imageURLs map[platform.ImageQuality]string
	imageErr  error

	texts     map[string][]string // chat -> messages
	images    map[string][]string // chat -> image URLs
	reactions []string
	group     *platform.GroupInfo
}

func newProfileTransport() *profileTransport {
	return &profileTransport{
		imageURLs: map[platform.ImageQuality]string{},
		texts:     map[string][]string{},
		images:    map[string][]string{},
	}
}

func (t *profileTransport) SendText(_ context.Context, chatJID, text string) error {
	t.texts[chatJID] = append(t.texts[chatJID], text)
	return nil
}

func (t *profileTransport) SendReply(_ context.Context, chatJID string, _ *platform.Message, text string) error {
	t.texts[chatJID] = append(t.texts[chatJID], text)
	return nil
}

func (t *profileTransport) SendImage(_ context.Context, chatJID string, media platform.Media, _ string) error {
	t.images[chatJID] = append(t.images[chatJID], media.URL)
	return nil
}

func (t *profileTransport) SendVideo(context.Context, string, platform.Media, string) error {
	return nil
}

func (t *profileTransport) SendAudio(context.Context, string, platform.Media) error { return nil }

func (t *profileTransport) React(_ context.Context, _, _, emoji string) error {
	t.reactions = append(t.reactions, emoji)
	return nil
}

func (t *profileTransport) ProfileImageURL(_ context.Context, _ string, quality platform.ImageQuality) (string, error) {
	if t.imageErr != nil {
		return "", t.imageErr
	}
	url, ok := t.imageURLs[quality]
	if !ok {
		return "", errors.New("no picture at this quality")
	}
	return url, nil
}

func (t *profileTransport) GroupMetadata(context.Context, string) (*platform.GroupInfo, error) {
	if t.group == nil {
		return nil, errors.New("not a group")
	}
	return t.group, nil
}

func newDPContext(transport *profileTransport) *command.Context {
	return &command.Context{
		Ctx:       context.Background(),
		Transport: transport,
		Msg: &platform.Message{
			ID:                "m1",
			ChatJID:           "123-456@g.us",
			SenderJID:         "4915550001@s.whatsapp.net",
			QuotedParticipant: "4915559999@s.whatsapp.net",
			IsGroup:           true,
		},
		Config: &config.Config{CommandPrefix: "."},
		Log:    zerolog.Nop(),
	}
}

func TestDP_DeliversToPersonalChat(t *testing.T) {
	transport := newProfileTransport()
	transport.imageURLs[platform.QualityFull] = "https://pps.whatsapp.net/full.jpg"

	cmd := &DPCommand{Engine: retrieve.NewEngine(time.Second, zerolog.Nop())}
	require.NoError(t, cmd.Run(newDPContext(transport)))

	personal := "4915550001@s.whatsapp.net"
	require.Len(t, transport.images[personal], 1)
	assert.Equal(t, "https://pps.whatsapp.net/full.jpg", transport.images[personal][0])
	assert.Empty(t, transport.images["123-456@g.us"], "picture never lands in the group")
}

func TestDP_FallsBackToPreview(t *testing.T) {
	transport := newProfileTransport()
	transport.imageURLs[platform.QualityPreview] = "https://pps.whatsapp.net/preview.jpg"

	cmd := &DPCommand{Engine: retrieve.NewEngine(time.Second, zerolog.Nop())}
	require.NoError(t, cmd.Run(newDPContext(transport)))

	personal := "4915550001@s.whatsapp.net"
	require.Len(t, transport.images[personal], 1)
	assert.Equal(t, "https://pps.whatsapp.net/preview.jpg", transport.images[personal][0])
}

func TestDP_FailureNoteStaysPrivate(t *testing.T) {
	transport := newProfileTransport()
	transport.imageErr = errors.New("401: not authorized")

	cmd := &DPCommand{Engine: retrieve.NewEngine(time.Second, zerolog.Nop())}
	require.NoError(t, cmd.Run(newDPContext(transport)), "exhausted lookup is not a command failure")

	personal := "4915550001@s.whatsapp.net"
	require.Len(t, transport.texts[personal], 1)
	assert.Contains(t, transport.texts[personal][0], "not accessible")
	assert.Empty(t, transport.texts["123-456@g.us"], "group chat sees nothing on failure")
}

func TestAvatarStrategies_Order(t *testing.T) {
	list := avatarStrategies(newProfileTransport())
	require.Len(t, list, 2)
	assert.Equal(t, "avatar-image", list[0].Name())
	assert.Equal(t, "avatar-preview", list[1].Name())
}
