// Package media holds the download/fetch commands. Every one of them is a thin
// shell around the retrieval engine: search or accept a URL, hand the target to
// an ordered strategy list, deliver whatever came back.
package media

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/media/search"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

var fileNamePattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// PlayCommand downloads a song by free-text query: search first, then walk the
// audio strategy list until one source delivers.
type PlayCommand struct {
	Search     search.Searcher
	Engine     *retrieve.Engine
	Strategies []retrieve.Strategy
}

func (c *PlayCommand) Name() string                   { return "play" }
func (c *PlayCommand) Description() string            { return "Search and download a song" }
func (c *PlayCommand) Aliases() []string              { return []string{"playfast", "song"} }
func (c *PlayCommand) Category() string               { return "🎵 Music" }
func (c *PlayCommand) RequireOwner() bool             { return false }
func (c *PlayCommand) Visibility() command.Visibility { return command.Verbose }

func (c *PlayCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usage("🎵 Usage: %splay <song name>\n\nExample: %splay believer imagine dragons",
			ctx.Config.CommandPrefix, ctx.Config.CommandPrefix)
	}

	query := strings.Join(ctx.Args, " ")
	ctx.React("🎵")

	videos, err := c.Search.Search(ctx.Ctx, query)
	if err != nil {
		if errors.Is(err, search.ErrNoResults) {
			return ctx.Replyf("❌ No results found for %q. Try different keywords.", query)
		}
		return fmt.Errorf("search %q: %w", query, err)
	}
	video := videos[0]

	res, err := c.Engine.Retrieve(ctx.Ctx, video.URL, c.Strategies)
	if err != nil {
		var exhausted *retrieve.ExhaustedError
		if errors.As(err, &exhausted) {
			// Every source failed; hand over the plain link instead of nothing.
			ctx.React("❌")
			return ctx.Replyf("🎵 %s\n⏱️ %s\n\n🔗 %s\n\nDirect download is not available right now.",
				video.Title, video.Duration, video.URL)
		}
		return err
	}

	audio := platform.Media{
		URL:      res.URL,
		Data:     res.Data,
		MimeType: "audio/mpeg",
		FileName: cleanFileName(video.Title) + ".mp3",
	}
	if err := ctx.Transport.SendAudio(ctx.Ctx, ctx.Msg.ChatJID, audio); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	ctx.React("✅")

	return ctx.Replyf("✅ *%s*\n👤 %s\n⏱️ %s\n💫 Source: %s",
		video.Title, orUnknown(video.Channel), orUnknown(video.Duration), res.SourceName)
}

func cleanFileName(name string) string {
	clean := fileNamePattern.ReplaceAllString(name, "_")
	if len(clean) > 40 {
		clean = clean[:40]
	}
	return strings.Trim(clean, "_")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
