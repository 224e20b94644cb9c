package core

import (
	"fmt"
	"strings"

	"cypherbot/internal/command"
	"cypherbot/internal/policy"
)

// ModeCommand is the administrative switch for the access policy. It is the
// only code path that mutates policy state after startup.
type ModeCommand struct{}

func (c *ModeCommand) Name() string { return "mode" }
func (c *ModeCommand) Description() string {
	return "Switch public/private mode and manage allowed users"
}
func (c *ModeCommand) Aliases() []string              { return []string{} }
func (c *ModeCommand) Category() string               { return "🛠️ Maintenance" }
func (c *ModeCommand) RequireOwner() bool             { return true }
func (c *ModeCommand) Visibility() command.Visibility { return command.Verbose }

func (c *ModeCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usage("⚙️ Usage: %smode status|public|private|allow <number>|deny <number>", ctx.Config.CommandPrefix)
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "status":
		allowed := ctx.Access.Allowed()
		text := fmt.Sprintf("⚙️ Mode: *%s*", ctx.Access.Mode())
		if len(allowed) > 0 {
			text += "\nAllowed: " + strings.Join(allowed, ", ")
		}
		return ctx.Reply(text)

	case "public":
		ctx.Access.SetMode(policy.ModePublic)
		return ctx.Reply("🌍 Bot is now in public mode.")

	case "private":
		ctx.Access.SetMode(policy.ModePrivate)
		return ctx.Reply("🔒 Bot is now in private mode.")

	case "allow":
		if len(ctx.Args) < 2 {
			return command.Usage("Usage: %smode allow <number>", ctx.Config.CommandPrefix)
		}
		ctx.Access.Allow(ctx.Args[1])
		return ctx.Replyf("✅ %s may now use commands in private mode.", ctx.Args[1])

	case "deny":
		if len(ctx.Args) < 2 {
			return command.Usage("Usage: %smode deny <number>", ctx.Config.CommandPrefix)
		}
		ctx.Access.Deny(ctx.Args[1])
		return ctx.Replyf("🚫 %s removed from the allowed list.", ctx.Args[1])

	default:
		return command.Usage("Unknown sub-command %q. Try status, public, private, allow or deny.", ctx.Args[0])
	}
}

func init() {
	command.Register(&ModeCommand{}, command.WithOwnerCheck())
}
