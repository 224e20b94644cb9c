// Package render holds the stylized-text commands.
package render

import (
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/platform"
	"cypherbot/internal/render"
	"cypherbot/internal/retrieve"
)

// ThreeDCommand renders free text as a 3D-style image. Bad input is ignored
// without a reply; in busy group chats a nagging bot is worse than a quiet one.
type ThreeDCommand struct {
	Engine     *retrieve.Engine
	Strategies []retrieve.Strategy
}

func (c *ThreeDCommand) Name() string                   { return "3d" }
func (c *ThreeDCommand) Description() string            { return "Render text as a 3D image" }
func (c *ThreeDCommand) Aliases() []string              { return []string{"3dtext"} }
func (c *ThreeDCommand) Category() string               { return "🎨 Fun" }
func (c *ThreeDCommand) RequireOwner() bool             { return false }
func (c *ThreeDCommand) Visibility() command.Visibility { return command.Silent }

func (c *ThreeDCommand) Run(ctx *command.Context) error {
	text := strings.Join(ctx.Args, " ")
	if text == "" || len(text) > render.MaxTextLength {
		return nil
	}

	res, err := c.Engine.Retrieve(ctx.Ctx, text, c.Strategies)
	if err != nil {
		return err
	}

	return ctx.Transport.SendImage(ctx.Ctx, ctx.Msg.ChatJID,
		platform.Media{URL: res.URL, Data: res.Data, MimeType: "image/jpeg"}, "")
}
