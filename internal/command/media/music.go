package media

import (
	"errors"
	"fmt"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/media/search"
)

// MusicCommand lists the top search hits so the user can refine a play query.
type MusicCommand struct {
	Search search.Searcher
}

func (c *MusicCommand) Name() string                   { return "music" }
func (c *MusicCommand) Description() string            { return "Search songs and list the top results" }
func (c *MusicCommand) Aliases() []string              { return []string{} }
func (c *MusicCommand) Category() string               { return "🎵 Music" }
func (c *MusicCommand) RequireOwner() bool             { return false }
func (c *MusicCommand) Visibility() command.Visibility { return command.Verbose }

func (c *MusicCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usage("🔍 Usage: %smusic <song name>", ctx.Config.CommandPrefix)
	}

	query := strings.Join(ctx.Args, " ")
	videos, err := c.Search.Search(ctx.Ctx, query)
	if err != nil {
		if errors.Is(err, search.ErrNoResults) {
			return ctx.Replyf("❌ No results for %q.", query)
		}
		return err
	}

	if len(videos) > 5 {
		videos = videos[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎵 *Results for %q*\n\n", query)
	for i, v := range videos {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, v.Title)
		if v.Channel != "" {
			fmt.Fprintf(&b, "   👤 %s\n", v.Channel)
		}
		if v.Duration != "" {
			fmt.Fprintf(&b, "   ⏱️ %s\n", v.Duration)
		}
	}
	fmt.Fprintf(&b, "\n💡 Use %splay <song name> to download.", ctx.Config.CommandPrefix)

	return ctx.Reply(b.String())
}
