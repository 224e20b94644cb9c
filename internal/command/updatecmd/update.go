// Package updatecmd exposes the self-update collaborator in chat.
package updatecmd

import (
	"fmt"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/update"
)

type UpdateCommand struct {
	Syncer update.Syncer
}

func (c *UpdateCommand) Name() string                   { return "update" }
func (c *UpdateCommand) Description() string            { return "Check for and apply bot updates" }
func (c *UpdateCommand) Aliases() []string              { return []string{} }
func (c *UpdateCommand) Category() string               { return "🛠️ Maintenance" }
func (c *UpdateCommand) RequireOwner() bool             { return true }
func (c *UpdateCommand) Visibility() command.Visibility { return command.Verbose }

func (c *UpdateCommand) Run(ctx *command.Context) error {
	if c.Syncer == nil {
		return ctx.Reply("🔄 Updates are not configured on this deployment.")
	}
	if len(ctx.Args) == 0 {
		return command.Usage("🔄 Usage: %supdate check|now", ctx.Config.CommandPrefix)
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "check":
		if err := ctx.Reply("🔍 Checking for updates..."); err != nil {
			return err
		}
		status, err := c.Syncer.Check(ctx.Ctx)
		if err != nil {
			return fmt.Errorf("update check: %w", err)
		}
		if status.UpToDate {
			return ctx.Reply("✅ Bot is up to date!")
		}
		return ctx.Replyf("📦 Updates available: %d changed, %d new.\n\n🔄 Use %supdate now to install.",
			len(status.Changed), len(status.Added), ctx.Config.CommandPrefix)

	case "now":
		if err := ctx.Reply("🚀 Applying update..."); err != nil {
			return err
		}
		report, err := c.Syncer.Sync(ctx.Ctx)
		if err != nil {
			return fmt.Errorf("update sync: %w", err)
		}
		if report.Updated == 0 && report.Added == 0 {
			return ctx.Reply("✅ Nothing to update.")
		}
		return ctx.Replyf("✅ Update applied: %d files updated, %d added.\n\n♻️ Restart the bot to load the new code.",
			report.Updated, report.Added)

	default:
		return command.Usage("Unknown sub-command %q. Try check or now.", ctx.Args[0])
	}
}
