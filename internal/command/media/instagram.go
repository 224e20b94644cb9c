package media

import (
	"fmt"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

type InstagramCommand struct {
	Engine     *retrieve.Engine
	Strategies []retrieve.Strategy
}

func (c *InstagramCommand) Name() string                   { return "instagram" }
func (c *InstagramCommand) Description() string            { return "Download Instagram posts, reels and stories" }
func (c *InstagramCommand) Aliases() []string              { return []string{"ig", "insta"} }
func (c *InstagramCommand) Category() string               { return "🎞️ Media" }
func (c *InstagramCommand) RequireOwner() bool             { return false }
func (c *InstagramCommand) Visibility() command.Visibility { return command.Verbose }

func (c *InstagramCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 || !strings.Contains(ctx.Args[0], "instagram.com") {
		return command.Usage("📸 Usage: %sinstagram <link>\n\nExample: %sinstagram https://www.instagram.com/p/ABC123/",
			ctx.Config.CommandPrefix, ctx.Config.CommandPrefix)
	}
	target := ctx.Args[0]

	ctx.React("📥")

	res, err := c.Engine.Retrieve(ctx.Ctx, target, c.Strategies)
	if err != nil {
		ctx.React("❌")
		return err
	}

	media := platform.Media{URL: res.URL, Data: res.Data}
	switch res.Kind {
	case retrieve.KindImage:
		err = ctx.Transport.SendImage(ctx.Ctx, ctx.Msg.ChatJID, media, orCaption(res.Title, "🖼️ Instagram Photo"))
	default:
		err = ctx.Transport.SendVideo(ctx.Ctx, ctx.Msg.ChatJID, media, orCaption(res.Title, "📹 Instagram Video"))
	}
	if err != nil {
		return fmt.Errorf("send media: %w", err)
	}
	ctx.React("✅")
	return nil
}

func orCaption(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}
