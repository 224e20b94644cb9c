package command

import (
	"sort"
	"strings"
)

// Registry stores commands by case-folded name and alias. Filled during
// startup, read-only afterwards; no mutex needed.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command under its name and aliases.
func (r *Registry) Register(cmd Command) {
	r.commands[strings.ToLower(cmd.Name())] = cmd
	for _, a := range cmd.Aliases() {
		r.commands[strings.ToLower(a)] = cmd
	}
}

// Get resolves a command name case-insensitively.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// All returns each registered command once, sorted by name.
func (r *Registry) All() []Command {
	seen := map[string]bool{}
	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		if seen[cmd.Name()] {
			continue
		}
		seen[cmd.Name()] = true
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Default is the process-wide registry command files register into from init().
var Default = NewRegistry()

// Register adds a command to the default registry, optionally wrapped in
// middlewares (first listed is outermost).
func Register(cmd Command, mws ...Middleware) {
	Default.Register(Apply(cmd, mws...))
}
