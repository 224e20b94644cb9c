package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cypherbot/internal/command"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

// ProfileCommand groups the informational lookups: own or quoted picture,
// a basic identity card, and group metadata.
type ProfileCommand struct {
	Engine *retrieve.Engine
}

func (c *ProfileCommand) Name() string                   { return "profile" }
func (c *ProfileCommand) Description() string            { return "Profile and group information" }
func (c *ProfileCommand) Aliases() []string              { return []string{} }
func (c *ProfileCommand) Category() string               { return "👤 Profile" }
func (c *ProfileCommand) RequireOwner() bool             { return false }
func (c *ProfileCommand) Visibility() command.Visibility { return command.Verbose }

func (c *ProfileCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usage("👤 Usage: %sprofile pic|info|group", ctx.Config.CommandPrefix)
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "pic":
		return c.runPic(ctx)
	case "info":
		return c.runInfo(ctx)
	case "group":
		return c.runGroup(ctx)
	default:
		return command.Usage("Unknown sub-command %q. Try pic, info or group.", ctx.Args[0])
	}
}

// runPic shows the requester's own picture, or the quoted sender's.
func (c *ProfileCommand) runPic(ctx *command.Context) error {
	target := ctx.Msg.SenderJID
	if ctx.Msg.QuotedParticipant != "" {
		target = ctx.Msg.QuotedParticipant
	}

	res, err := c.Engine.Retrieve(ctx.Ctx, target, avatarStrategies(ctx.Transport))
	if err != nil {
		var exhausted *retrieve.ExhaustedError
		if errors.As(err, &exhausted) {
			return ctx.Reply("🔒 No accessible profile picture. The user may have none, or privacy settings restrict it.")
		}
		return err
	}

	caption := fmt.Sprintf("🖼️ Profile picture of %s (%s quality)",
		platform.BareNumber(target), res.QualityHint)
	return ctx.Transport.SendImage(ctx.Ctx, ctx.Msg.ChatJID, platform.Media{URL: res.URL}, caption)
}

func (c *ProfileCommand) runInfo(ctx *command.Context) error {
	target := ctx.Msg.SenderJID
	if ctx.Msg.QuotedParticipant != "" {
		target = ctx.Msg.QuotedParticipant
	}

	chatKind := "personal chat"
	if ctx.Msg.IsGroup {
		chatKind = "group chat"
	}
	return ctx.Replyf("👤 *Profile Info*\n\n📱 Number: %s\n🆔 JID: %s\n💬 Context: %s",
		platform.BareNumber(target), target, chatKind)
}

func (c *ProfileCommand) runGroup(ctx *command.Context) error {
	if !ctx.Msg.IsGroup {
		return ctx.Reply("❌ This only works inside a group chat.")
	}

	info, err := ctx.Transport.GroupMetadata(ctx.Ctx, ctx.Msg.ChatJID)
	if err != nil {
		return fmt.Errorf("group metadata: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 *%s*\n\n", info.Subject)
	if info.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", info.Description)
	}
	fmt.Fprintf(&b, "👤 Members: %d\n", len(info.Participants))
	if info.OwnerJID != "" {
		fmt.Fprintf(&b, "👑 Owner: %s\n", platform.BareNumber(info.OwnerJID))
	}
	if info.CreatedAt > 0 {
		fmt.Fprintf(&b, "📅 Created: %s\n", time.Unix(info.CreatedAt, 0).Format("2006-01-02"))
	}
	return ctx.Reply(b.String())
}
