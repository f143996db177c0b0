package commands

import (
	"fmt"

	"github.com/samber/mo"

	"tdbot/models"
)

// Registry is the static command table. It is populated once by NewRegistry
// and never mutated afterwards; per-request code only reads from it.
type Registry struct {
	commands map[string]*models.Command
	order    []string
}

// NewRegistry builds the full command table wired to the given dependencies
func NewRegistry(deps Deps) *Registry {
	r := &Registry{commands: make(map[string]*models.Command)}

	r.register(deps.truthCommand())
	r.register(deps.dareCommand())
	r.register(deps.wyrCommand())
	r.register(deps.nhieCommand())
	r.register(deps.randomCommand())
	r.register(deps.paranoiaCommand())
	r.register(deps.answerCommand())
	r.register(deps.settingsCommand())
	r.register(deps.statsCommand())
	r.register(deps.pingCommand())
	r.register(deps.helpCommand(r))

	return r
}

func (r *Registry) register(cmd *models.Command) {
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("duplicate command registration: %s", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
}

// Get looks up a command by exact name
func (r *Registry) Get(name string) mo.Option[*models.Command] {
	cmd, ok := r.commands[name]
	if !ok {
		return mo.None[*models.Command]()
	}
	return mo.Some(cmd)
}

// All returns every command in registration order
func (r *Registry) All() []*models.Command {
	all := make([]*models.Command, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.commands[name])
	}
	return all
}

// Names returns every command name in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
