// Package router is the single entry point for incoming messages: prefix
// recognition, tokenizing, registry lookup, access-policy gating, dispatch,
// and the top-level error boundary. It is pure dispatch; every side effect
// belongs to the handler it invokes.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cypherbot/internal/command"
	"cypherbot/internal/config"
	"cypherbot/internal/platform"
	"cypherbot/internal/policy"
	"cypherbot/internal/retrieve"
)

const privateModeNotice = "🔒 Bot is in private mode. Only allowed users can use commands."

type Router struct {
	registry  *command.Registry
	access    *policy.Access
	guards    *policy.GuardSet
	cfg       *config.Config
	transport platform.Transport
	log       zerolog.Logger
}

func New(reg *command.Registry, access *policy.Access, guards *policy.GuardSet, cfg *config.Config, transport platform.Transport, log zerolog.Logger) *Router {
	return &Router{
		registry:  reg,
		access:    access,
		guards:    guards,
		cfg:       cfg,
		transport: transport,
		log:       log.With().Str("component", "router").Logger(),
	}
}

// HandleIncoming routes one message. Ordinary conversation (no prefix) and
// unknown command names are ignored without any reply; a bot that answers
// every typo gets muted from group chats fast.
func (r *Router) HandleIncoming(ctx context.Context, msg *platform.Message) {
	if msg == nil || msg.Text == "" {
		return
	}

	body := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(body, r.cfg.CommandPrefix) {
		return
	}

	tokens := strings.Fields(body[len(r.cfg.CommandPrefix):])
	if len(tokens) == 0 {
		return
	}
	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	cmd, ok := r.registry.Get(name)
	if !ok {
		return
	}

	if !r.access.Permit(msg.SenderJID) {
		r.log.Info().Str("command", name).Str("sender", platform.BareNumber(msg.SenderJID)).Msg("refused by access policy")
		if err := r.transport.SendText(ctx, msg.ChatJID, privateModeNotice); err != nil {
			r.log.Warn().Err(err).Msg("failed to send refusal notice")
		}
		return
	}

	cmdCtx := &command.Context{
		Ctx:       ctx,
		Transport: r.transport,
		Msg:       msg,
		Args:      args,
		Access:    r.access,
		Guards:    r.guards,
		Config:    r.cfg,
		Log:       r.log.With().Str("command", cmd.Name()).Logger(),
	}

	start := time.Now()
	err := r.invoke(cmd, cmdCtx)
	elapsed := time.Since(start)

	r.log.Info().Str("command", cmd.Name()).
		Str("chat", msg.ChatJID).
		Dur("elapsed", elapsed).
		Msg("command executed")

	if err != nil {
		r.handleError(cmd, cmdCtx, err)
	}
}

// invoke runs the handler behind a recover so one misbehaving command can
// never take the process down or block later messages.
func (r *Router) invoke(cmd command.Command, ctx *command.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return cmd.Run(ctx)
}

// handleError is the single place that decides what the chat gets to see.
// Expected failures produce a clear message; unexpected ones are logged in
// full and kept out of the chat unless the command opted into Verbose.
func (r *Router) handleError(cmd command.Command, ctx *command.Context, err error) {
	var usage *command.UsageError
	var denied *policy.DeniedError
	var exhausted *retrieve.ExhaustedError

	switch {
	case errors.As(err, &usage):
		r.reply(ctx, usage.Hint)

	case errors.As(err, &denied):
		text := "⏳ " + denied.Reason
		if denied.RetryAfter > 0 {
			text = fmt.Sprintf("⏳ Rate limited. Try again in %d seconds.",
				int(denied.RetryAfter.Round(time.Second).Seconds()))
		}
		r.reply(ctx, text)

	case errors.As(err, &exhausted):
		r.log.Warn().Str("command", cmd.Name()).
			Str("target", exhausted.Target).
			Int("attempts", exhausted.Attempts).
			AnErr("last_error", exhausted.LastErr).
			Msg("all retrieval strategies exhausted")
		r.reply(ctx, "❌ Could not fetch that right now. All sources failed, try again later.")

	default:
		r.log.Error().Str("command", cmd.Name()).Err(err).Msg("command failed")
		if cmd.Visibility() == command.Verbose {
			r.reply(ctx, "⚠️ Something went wrong. Try again in a moment.")
		}
	}
}

func (r *Router) reply(ctx *command.Context, text string) {
	if err := ctx.Reply(text); err != nil {
		r.log.Warn().Err(err).Msg("failed to send reply")
	}
}
