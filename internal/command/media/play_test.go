package media

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
	"cypherbot/internal/media/search"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

type fakeTransport struct {
	replies []string
	audio   []platform.Media
	videos  []platform.Media
	images  []platform.Media
}

func (t *fakeTransport) SendText(context.Context, string, string) error { return nil }

func (t *fakeTransport) SendReply(_ context.Context, _ string, _ *platform.Message, text string) error {
	t.replies = append(t.replies, text)
	return nil
}

func (t *fakeTransport) SendImage(_ context.Context, _ string, media platform.Media, _ string) error {
	t.images = append(t.images, media)
	return nil
}

func (t *fakeTransport) SendVideo(_ context.Context, _ string, media platform.Media, _ string) error {
	t.videos = append(t.videos, media)
	return nil
}

func (t *fakeTransport) SendAudio(_ context.Context, _ string, media platform.Media) error {
	t.audio = append(t.audio, media)
	return nil
}

func (t *fakeTransport) React(context.Context, string, string, string) error { return nil }

func (t *fakeTransport) ProfileImageURL(context.Context, string, platform.ImageQuality) (string, error) {
	return "", errors.New("not wired")
}

func (t *fakeTransport) GroupMetadata(context.Context, string) (*platform.GroupInfo, error) {
	return nil, errors.New("not wired")
}

type fakeSearcher struct {
	videos []search.VideoInfo
	err    error
}

func (s *fakeSearcher) Search(context.Context, string) ([]search.VideoInfo, error) {
	return s.videos, s.err
}

type fakeStrategy struct {
	name  string
	res   *retrieve.Result
	err   error
	calls int
}

func (s *fakeStrategy) Name() string { return s.name }

func (s *fakeStrategy) Attempt(context.Context, string) (*retrieve.Result, error) {
	s.calls++
	return s.res, s.err
}

func newContext(transport *fakeTransport, args ...string) *command.Context {
	return &command.Context{
		Ctx:       context.Background(),
		Transport: transport,
		Msg:       &platform.Message{ID: "m1", ChatJID: "chat@g.us", SenderJID: "222@s.whatsapp.net"},
		Args:      args,
		Config:    &config.Config{CommandPrefix: "."},
		Log:       zerolog.Nop(),
	}
}

func TestPlay_FallsThroughToWorkingSource(t *testing.T) {
	transport := &fakeTransport{}
	slow := &fakeStrategy{name: "serviceA", err: context.DeadlineExceeded}
	good := &fakeStrategy{name: "serviceB", res: &retrieve.Result{
		URL:  "https://cdn.serviceb.test/track.mp3",
		Kind: retrieve.KindAudio,
	}}
	spare := &fakeStrategy{name: "serviceC"}

	cmd := &PlayCommand{
		Search: &fakeSearcher{videos: []search.VideoInfo{{
			ID:       "dQw4w9WgXcQ",
			URL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Title:    "Never Gonna Give You Up",
			Duration: "3:33",
			Channel:  "Rick Astley",
		}}},
		Engine:     retrieve.NewEngine(time.Second, zerolog.Nop()),
		Strategies: []retrieve.Strategy{slow, good, spare},
	}

	require.NoError(t, cmd.Run(newContext(transport, "rick", "astley")))

	assert.Equal(t, 1, slow.calls)
	assert.Equal(t, 1, good.calls)
	assert.Zero(t, spare.calls, "later strategies must not run after a success")

	require.Len(t, transport.audio, 1)
	assert.Equal(t, "https://cdn.serviceb.test/track.mp3", transport.audio[0].URL)
	assert.Equal(t, "Never_Gonna_Give_You_Up.mp3", transport.audio[0].FileName)

	require.Len(t, transport.replies, 1)
	assert.Contains(t, transport.replies[0], "serviceB")
}

func TestPlay_AllSourcesFailSendsLink(t *testing.T) {
	transport := &fakeTransport{}
	down := &fakeStrategy{name: "serviceA", err: errors.New("503")}

	cmd := &PlayCommand{
		Search: &fakeSearcher{videos: []search.VideoInfo{{
			URL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Title: "Never Gonna Give You Up",
		}}},
		Engine:     retrieve.NewEngine(time.Second, zerolog.Nop()),
		Strategies: []retrieve.Strategy{down},
	}

	require.NoError(t, cmd.Run(newContext(transport, "rick", "astley")))

	assert.Empty(t, transport.audio)
	require.Len(t, transport.replies, 1)
	assert.Contains(t, transport.replies[0], "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
}

func TestPlay_NoArgsUsage(t *testing.T) {
	cmd := &PlayCommand{}
	err := cmd.Run(newContext(&fakeTransport{}))

	var usage *command.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Hint, ".play")
}

func TestPlay_NoSearchResults(t *testing.T) {
	transport := &fakeTransport{}
	cmd := &PlayCommand{Search: &fakeSearcher{err: search.ErrNoResults}}

	require.NoError(t, cmd.Run(newContext(transport, "zzzzzz")))
	require.Len(t, transport.replies, 1)
	assert.Contains(t, transport.replies[0], "No results")
}

func TestCleanFileName(t *testing.T) {
	assert.Equal(t, "Never_Gonna_Give_You_Up", cleanFileName("Never Gonna Give You Up"))
	assert.Equal(t, "A_B", cleanFileName("**A // B**"))
	long := cleanFileName("a very long title that keeps going and going and going forever")
	assert.LessOrEqual(t, len(long), 40)
}
