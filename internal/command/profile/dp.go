package profile

import (
	"errors"
	"fmt"
	"time"

	"cypherbot/internal/command"
	"cypherbot/internal/platform"
	"cypherbot/internal/retrieve"
)

// GuardFamily names the rate-guard bucket shared by the picture lookups.
// Profile-picture fetches are the one thing the platform actively watches, so
// this family carries both a minimum spacing and an hourly cap.
const GuardFamily = "profile"

// DPCommand fetches the profile picture of a quoted sender and delivers it to
// the requester's personal chat, never into the group.
type DPCommand struct {
	Engine *retrieve.Engine
}

func (c *DPCommand) Name() string                   { return "dp" }
func (c *DPCommand) Description() string            { return "Fetch the profile picture of a quoted user" }
func (c *DPCommand) Aliases() []string              { return []string{} }
func (c *DPCommand) Category() string               { return "👤 Profile" }
func (c *DPCommand) RequireOwner() bool             { return false }
func (c *DPCommand) Visibility() command.Visibility { return command.Silent }

func (c *DPCommand) Run(ctx *command.Context) error {
	target := ctx.Msg.QuotedParticipant
	number := platform.BareNumber(target)
	personalChat := platform.UserJID(ctx.Msg.SenderJID)

	ctx.React("📸")

	res, err := c.Engine.Retrieve(ctx.Ctx, target, avatarStrategies(ctx.Transport))
	if err != nil {
		var exhausted *retrieve.ExhaustedError
		if errors.As(err, &exhausted) {
			ctx.React("❌")
			note := fmt.Sprintf("❌ *Download failed*\n\n📱 %s\nProfile picture not accessible (privacy settings or no picture).", number)
			if sendErr := ctx.Transport.SendText(ctx.Ctx, personalChat, note); sendErr != nil {
				ctx.Log.Warn().Err(sendErr).Msg("failed to deliver failure note")
			}
			return nil
		}
		return err
	}

	caption := fmt.Sprintf("👤 %s\n⏰ %s", number, time.Now().Format("15:04:05"))
	if err := ctx.Transport.SendImage(ctx.Ctx, personalChat, platform.Media{URL: res.URL}, caption); err != nil {
		return fmt.Errorf("deliver picture: %w", err)
	}
	ctx.React("✅")
	return nil
}
