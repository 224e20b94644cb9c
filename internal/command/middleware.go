package command

// Middleware wraps a command; the wrapped value remains a Command so layers
// stack freely.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(cmd Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		cmd = mws[i](cmd)
	}
	return cmd
}

type wrappedCommand struct {
	Command
	wrap func(ctx *Context) error
}

func (w *wrappedCommand) Run(ctx *Context) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// WithRateGuard gates the command behind the named guard family. The guard is
// consulted before the handler runs; a denial surfaces as policy.DeniedError.
func WithRateGuard(family string) Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *Context) error {
				if g := ctx.Guards.Get(family); g != nil {
					if err := g.CheckAndConsume(); err != nil {
						return err
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithOwnerCheck refuses the command for anyone but the configured owner.
func WithOwnerCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *Context) error {
				if !ctx.Access.IsOwner(ctx.Msg.SenderJID) {
					return ctx.Reply("🔒 Owner only.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithReplyRequired refuses the command unless it quotes someone's message.
func WithReplyRequired(hint string) Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *Context) error {
				if ctx.Msg.QuotedParticipant == "" {
					return &UsageError{Hint: hint}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
