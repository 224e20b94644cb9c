package media

import (
	"fmt"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

type TikTokCommand struct {
	Engine     *retrieve.Engine
	Strategies []retrieve.Strategy
}

func (c *TikTokCommand) Name() string                   { return "tiktok" }
func (c *TikTokCommand) Description() string            { return "Download a TikTok video" }
func (c *TikTokCommand) Aliases() []string              { return []string{"tt"} }
func (c *TikTokCommand) Category() string               { return "🎞️ Media" }
func (c *TikTokCommand) RequireOwner() bool             { return false }
func (c *TikTokCommand) Visibility() command.Visibility { return command.Verbose }

func (c *TikTokCommand) Run(ctx *command.Context) error {
	// Keeps the historical `.tiktok down <link>` form but accepts a bare link too.
	args := ctx.Args
	if len(args) > 0 && strings.EqualFold(args[0], "down") {
		args = args[1:]
	}
	if len(args) == 0 || !strings.Contains(args[0], "tiktok.com") {
		return command.Usage("📱 Usage: %stiktok down <link>\n\nExample: %stiktok down https://vm.tiktok.com/ABC123/",
			ctx.Config.CommandPrefix, ctx.Config.CommandPrefix)
	}
	target := args[0]

	ctx.React("📥")

	res, err := c.Engine.Retrieve(ctx.Ctx, target, c.Strategies)
	if err != nil {
		ctx.React("❌")
		return err
	}

	caption := "🎵 TikTok Video"
	if res.Title != "" {
		caption = "🎵 " + res.Title
	}
	if err := ctx.Transport.SendVideo(ctx.Ctx, ctx.Msg.ChatJID, platform.Media{URL: res.URL, Data: res.Data}, caption); err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	ctx.React("✅")
	return nil
}
