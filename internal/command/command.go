// Package command defines the command contract and registry. Each command
// lives in its own file under a subpackage and registers itself from init(),
// the same way every other part of the bot finds it.
package command

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cypherbot/internal/config"
	"cypherbot/internal/platform"
	"cypherbot/internal/policy"
)

// Visibility controls what the router's error boundary tells the chat when a
// command fails unexpectedly. Expected failures (usage, policy, exhausted
// providers) are always surfaced; unexpected ones only for Verbose commands.
type Visibility int

const (
	Silent Visibility = iota
	Verbose
)

// Command is the universal contract: identity plus execution.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Category() string
	RequireOwner() bool
	Visibility() Visibility
	Run(ctx *Context) error
}

// Context carries everything a handler may touch for one invocation. It is
// created per message and discarded when the handler returns.
type Context struct {
	Ctx       context.Context
	Transport platform.Transport
	Msg       *platform.Message
	Args      []string

	Access *policy.Access
	Guards *policy.GuardSet
	Config *config.Config
	Log    zerolog.Logger
}

// Reply sends a quoted text reply into the originating chat.
func (c *Context) Reply(text string) error {
	return c.Transport.SendReply(c.Ctx, c.Msg.ChatJID, c.Msg, text)
}

// Replyf is Reply with formatting.
func (c *Context) Replyf(format string, args ...any) error {
	return c.Reply(fmt.Sprintf(format, args...))
}

// React puts an emoji reaction on the triggering message. Failures are logged
// and dropped; a missing reaction never aborts a command.
func (c *Context) React(emoji string) {
	if err := c.Transport.React(c.Ctx, c.Msg.ChatJID, c.Msg.ID, emoji); err != nil {
		c.Log.Debug().Err(err).Str("emoji", emoji).Msg("reaction failed")
	}
}

// UsageError signals missing or invalid arguments. The router replies with the
// hint and nothing else; it never reaches the logs as a failure.
type UsageError struct {
	Hint string
}

func (e *UsageError) Error() string { return e.Hint }

// Usage builds a UsageError.
func Usage(format string, args ...any) error {
	return &UsageError{Hint: fmt.Sprintf(format, args...)}
}
