package commands

import (
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Registry holds every command, button and modal handler. It is filled once
// at startup and only read afterwards, so lookups need no locking.
type Registry struct {
	commands map[string]Command
	order    []string
	buttons  map[string]Button
	modals   map[string]Modal
	logger   *zap.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		commands: make(map[string]Command),
		buttons:  make(map[string]Button),
		modals:   make(map[string]Modal),
		logger:   logger,
	}
}

// RegistryParams holds the handler groups collected by Fx.
type RegistryParams struct {
	fx.In
	Logger   *zap.Logger
	Commands []Command `group:"commands"`
	Buttons  []Button  `group:"buttons"`
	Modals   []Modal   `group:"modals"`
}

// NewRegistryFromGroups builds a Registry from the Fx value groups.
func NewRegistryFromGroups(params RegistryParams) *Registry {
	r := NewRegistry(params.Logger.Named("registry"))

	for _, cmd := range params.Commands {
		r.AddCommand(cmd)
	}
	for _, b := range params.Buttons {
		r.AddButton(b)
	}
	for _, m := range params.Modals {
		r.AddModal(m)
	}

	r.logger.Info("Loaded interaction handlers",
		zap.Int("commands", len(r.commands)),
		zap.Int("buttons", len(r.buttons)),
		zap.Int("modals", len(r.modals)),
	)

	return r
}

// AddCommand registers cmd under its name. A later command with the same name
// replaces the earlier one.
func (r *Registry) AddCommand(cmd Command) {
	if cmd == nil {
		r.logger.Warn("Skipping nil command")

		return
	}

	name := cmd.Name()
	if _, exists := r.commands[name]; exists {
		r.logger.Warn("Duplicate command name, replacing previous handler", zap.String("commandName", name))
	} else {
		r.order = append(r.order, name)
	}

	r.commands[name] = cmd
}

// AddButton registers b under its button id.
func (r *Registry) AddButton(b Button) {
	if b == nil {
		r.logger.Warn("Skipping nil button handler")

		return
	}

	id := b.ButtonID()
	if _, exists := r.buttons[id]; exists {
		r.logger.Warn("Duplicate button id, replacing previous handler", zap.String("buttonID", id))
	}

	r.buttons[id] = b
}

// AddModal registers m under its modal id.
func (r *Registry) AddModal(m Modal) {
	if m == nil {
		r.logger.Warn("Skipping nil modal handler")

		return
	}

	id := m.ModalID()
	if _, exists := r.modals[id]; exists {
		r.logger.Warn("Duplicate modal id, replacing previous handler", zap.String("modalID", id))
	}

	r.modals[id] = m
}

// Command returns the command with the given name.
func (r *Registry) Command(name string) (Command, bool) {
	cmd, ok := r.commands[name]

	return cmd, ok
}

// Button returns the handler for a button custom id.
func (r *Registry) Button(customID string) (Button, bool) {
	return lookup(r.buttons, customID)
}

// Modal returns the handler for a modal custom id.
func (r *Registry) Modal(customID string) (Modal, bool) {
	return lookup(r.modals, customID)
}

// lookup matches the full custom id first, then the part before the first ':'.
func lookup[T any](m map[string]T, customID string) (T, bool) {
	if h, ok := m[customID]; ok {
		return h, true
	}

	if prefix, _, found := strings.Cut(customID, ":"); found {
		if h, ok := m[prefix]; ok {
			return h, true
		}
	}

	var zero T

	return zero, false
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []Command {
	cmds := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}

	return cmds
}

// CommandData returns the registration payload of every command.
func (r *Registry) CommandData() []api.CreateCommandData {
	cmds := r.Commands()
	data := make([]api.CreateCommandData, 0, len(cmds))
	for _, cmd := range cmds {
		data = append(data, Descriptor(cmd))
	}

	return data
}
