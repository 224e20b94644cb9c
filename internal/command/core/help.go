package core

import (
	"fmt"
	"sort"
	"strings"

	"cypherbot/internal/command"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string                   { return "help" }
func (c *HelpCommand) Description() string            { return "List available commands" }
func (c *HelpCommand) Aliases() []string              { return []string{"menu", "commands"} }
func (c *HelpCommand) Category() string               { return "🕯️ Information" }
func (c *HelpCommand) RequireOwner() bool             { return false }
func (c *HelpCommand) Visibility() command.Visibility { return command.Verbose }

func (c *HelpCommand) Run(ctx *command.Context) error {
	byCategory := map[string][]command.Command{}
	for _, cmd := range command.Default.All() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("📖 *Commands*\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "\n*%s*\n", cat)
		for _, cmd := range byCategory[cat] {
			fmt.Fprintf(&b, "%s%s: %s\n", ctx.Config.CommandPrefix, cmd.Name(), cmd.Description())
		}
	}
	return ctx.Reply(b.String())
}

func init() {
	command.Register(&HelpCommand{})
}
