package cmdkit

import (
	"sync/atomic"
)

// Command is a single invocable unit: checks, cooldowns, a handler and the
// qualified aliases it answers to. Commands are created with Module.Command
// and configured fluently; once dispatching begins only the enabled flag may
// change.
type Command struct {
	name        string
	aliases     []string
	fullAliases []string
	checks      []checkEntry
	cooldowns   []Cooldown
	handler     Handler
	module      *Module // lookup only, the module owns this command
	enabled     atomic.Bool
}

// Named sets a display name for the command. Without one, the name defaults
// to the first qualified alias.
func (c *Command) Named(name string) *Command {
	c.name = name
	return c
}

// Check attaches an ungrouped check. Ungrouped checks are AND-combined with
// every other check on the command: each of them must pass.
func (c *Command) Check(checks ...Check) *Command {
	for _, chk := range checks {
		c.checks = append(c.checks, checkEntry{check: chk})
	}
	return c
}

// CheckGroup attaches checks sharing a group label. A group passes if at
// least one of its members passes.
func (c *Command) CheckGroup(group string, checks ...Check) *Command {
	for _, chk := range checks {
		c.checks = append(c.checks, checkEntry{check: chk, group: group})
	}
	return c
}

// Cooldown attaches a rate-limit descriptor. A descriptor attached without a
// key is keyed by the command's name so that providers can keep state per
// command.
func (c *Command) Cooldown(cds ...Cooldown) *Command {
	for _, cd := range cds {
		if cd.key == "" {
			cd.key = c.Name()
		}
		c.cooldowns = append(c.cooldowns, cd)
	}
	return c
}

// Handler sets the function run when the command passes all gates.
func (c *Command) Handler(h Handler) *Command {
	c.handler = h
	return c
}

// Name returns the display name, defaulting to the first qualified alias.
func (c *Command) Name() string {
	if c.name != "" {
		return c.name
	}
	if len(c.fullAliases) > 0 {
		return c.fullAliases[0]
	}
	return ""
}

// Aliases returns the raw aliases declared on the command.
func (c *Command) Aliases() []string {
	return append([]string(nil), c.aliases...)
}

// FullAliases returns the qualified aliases composed when the command was
// built. They are never recomputed.
func (c *Command) FullAliases() []string {
	return append([]string(nil), c.fullAliases...)
}

// Cooldowns returns the attached cooldown descriptors in declaration order.
func (c *Command) Cooldowns() []Cooldown {
	return append([]Cooldown(nil), c.cooldowns...)
}

// Module returns the owning module.
func (c *Command) Module() *Module {
	return c.module
}

// Enable marks the command enabled.
func (c *Command) Enable() {
	c.enabled.Store(true)
}

// Disable marks the command disabled.
func (c *Command) Disable() {
	c.enabled.Store(false)
}

// Enabled reports the command's own flag, ignoring the owning module.
func (c *Command) Enabled() bool {
	return c.enabled.Load()
}

// EffectiveEnabled reports whether the command can currently run: both the
// owning module's flag and the command's own flag must be set. The value is
// computed from the live flags on every call, never cached.
func (c *Command) EffectiveEnabled() bool {
	return c.module.Enabled() && c.enabled.Load()
}
