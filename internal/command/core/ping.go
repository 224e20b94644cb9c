package core

import (
	"fmt"
	"time"

	"cypherbot/internal/command"
	"cypherbot/internal/version"
)

var startedAt = time.Now()

type PingCommand struct{}

func (c *PingCommand) Name() string                   { return "ping" }
func (c *PingCommand) Description() string            { return "Check that the bot is alive" }
func (c *PingCommand) Aliases() []string              { return []string{} }
func (c *PingCommand) Category() string               { return "🕯️ Information" }
func (c *PingCommand) RequireOwner() bool             { return false }
func (c *PingCommand) Visibility() command.Visibility { return command.Verbose }

func (c *PingCommand) Run(ctx *command.Context) error {
	uptime := time.Since(startedAt).Round(time.Second)
	return ctx.Reply(fmt.Sprintf("🏓 Pong!\n%s %s, up %s", version.AppName, version.Version, uptime))
}

func init() {
	command.Register(&PingCommand{})
}
