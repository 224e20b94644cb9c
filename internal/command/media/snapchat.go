package media

import (
	"fmt"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

type SnapchatCommand struct {
	Engine     *retrieve.Engine
	Strategies []retrieve.Strategy
}

func (c *SnapchatCommand) Name() string                   { return "snapchat" }
func (c *SnapchatCommand) Description() string            { return "Download Snapchat videos" }
func (c *SnapchatCommand) Aliases() []string              { return []string{"snap"} }
func (c *SnapchatCommand) Category() string               { return "🎞️ Media" }
func (c *SnapchatCommand) RequireOwner() bool             { return false }
func (c *SnapchatCommand) Visibility() command.Visibility { return command.Verbose }

func (c *SnapchatCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 || !strings.Contains(ctx.Args[0], "snapchat.com") {
		return command.Usage("👻 Usage: %ssnapchat <link>", ctx.Config.CommandPrefix)
	}
	target := ctx.Args[0]

	ctx.React("📥")

	res, err := c.Engine.Retrieve(ctx.Ctx, target, c.Strategies)
	if err != nil {
		ctx.React("❌")
		return err
	}

	caption := orCaption(res.Title, "📹 Snapchat Video")
	if err := ctx.Transport.SendVideo(ctx.Ctx, ctx.Msg.ChatJID, platform.Media{URL: res.URL, Data: res.Data}, caption); err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	ctx.React("✅")
	return nil
}
