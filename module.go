package cmdkit

import (
	"sync/atomic"
)

// DefaultSeparator joins a module prefix and a command name in composed
// aliases ("mod ban"). Override it with WithSeparator on NewRoot.
const DefaultSeparator = " "

// Module is a named grouping node in the command tree. It owns the commands
// and child modules declared on it, carries its own checks (a mandatory gate
// for everything beneath it) and contributes alias prefixes to its children.
//
// The tree is built at startup and should be treated as immutable once
// dispatching begins; the enabled flag is the one runtime-mutable field and
// is safe to toggle concurrently.
type Module struct {
	name        string
	aliases     []string
	fullAliases []string
	checks      []checkEntry
	parent      *Module // lookup only, the parent owns this module
	separator   string
	modules     []*Module
	commands    []*Command
	enabled     atomic.Bool
}

// RootOption configures the root module.
type RootOption func(*Module)

// WithSeparator sets the separator used when composing qualified aliases.
func WithSeparator(sep string) RootOption {
	return func(m *Module) {
		m.separator = sep
	}
}

// NewRoot creates the root of a command tree. The root has no aliases of its
// own: commands declared directly on it are reachable by their raw names.
//
// Example:
//
//	root := cmdkit.NewRoot(cmdkit.WithSeparator("/"))
//	root.Command("ping").Handler(pingHandler)
func NewRoot(opts ...RootOption) *Module {
	root := &Module{separator: DefaultSeparator}
	root.enabled.Store(true)
	for _, opt := range opts {
		opt(root)
	}
	return root
}

// Group declares a child module under m.
//
// Aliases may include the empty string, which makes the child reachable by
// the parent's name alone. Composition of the child's qualified aliases
// happens here, exactly once.
//
// Example:
//
//	mod := root.Group("mod", "m")
//	mod.Group("warn")            // reachable as "mod warn", "m warn"
func (m *Module) Group(aliases ...string) *Module {
	child := &Module{
		aliases:     append([]string(nil), aliases...),
		fullAliases: composeAliases(m.fullAliases, append([]string(nil), aliases...), m.separator),
		parent:      m,
		separator:   m.separator,
	}
	child.enabled.Store(true)
	m.modules = append(m.modules, child)
	return child
}

// Command declares a command owned by m. The command's qualified aliases are
// composed here, exactly once, against m's own composed aliases.
func (m *Module) Command(aliases ...string) *Command {
	cmd := &Command{
		aliases:     append([]string(nil), aliases...),
		fullAliases: composeAliases(m.fullAliases, append([]string(nil), aliases...), m.separator),
		module:      m,
	}
	cmd.enabled.Store(true)
	m.commands = append(m.commands, cmd)
	return cmd
}

// Named sets a display name for the module.
func (m *Module) Named(name string) *Module {
	m.name = name
	return m
}

// Check attaches an ungrouped check to the module. Ungrouped checks at the
// same level are AND-combined: every one of them must pass.
func (m *Module) Check(checks ...Check) *Module {
	for _, c := range checks {
		m.checks = append(m.checks, checkEntry{check: c})
	}
	return m
}

// CheckGroup attaches checks sharing a group label. Checks in the same group
// are OR-combined: the group passes if at least one of them passes.
func (m *Module) CheckGroup(group string, checks ...Check) *Module {
	for _, c := range checks {
		m.checks = append(m.checks, checkEntry{check: c, group: group})
	}
	return m
}

// Name returns the module's display name, defaulting to its first qualified
// alias.
func (m *Module) Name() string {
	if m.name != "" {
		return m.name
	}
	if len(m.fullAliases) > 0 {
		return m.fullAliases[0]
	}
	return ""
}

// Aliases returns the raw aliases declared on the module.
func (m *Module) Aliases() []string {
	return append([]string(nil), m.aliases...)
}

// FullAliases returns the module's composed qualified aliases.
func (m *Module) FullAliases() []string {
	return append([]string(nil), m.fullAliases...)
}

// Parent returns the owning module, or nil for the root.
func (m *Module) Parent() *Module {
	return m.parent
}

// Modules returns the child modules declared on m.
func (m *Module) Modules() []*Module {
	return append([]*Module(nil), m.modules...)
}

// Commands returns the commands owned by m.
func (m *Module) Commands() []*Command {
	return append([]*Command(nil), m.commands...)
}

// Enable marks the module enabled.
func (m *Module) Enable() {
	m.enabled.Store(true)
}

// Disable marks the module disabled. Commands owned by a disabled module are
// effectively disabled regardless of their own flag.
func (m *Module) Disable() {
	m.enabled.Store(false)
}

// Enabled reports whether the module itself is enabled.
func (m *Module) Enabled() bool {
	return m.enabled.Load()
}

// Walk visits every command in the subtree rooted at m, depth-first in
// declaration order.
func (m *Module) Walk(fn func(*Command)) {
	for _, cmd := range m.commands {
		fn(cmd)
	}
	for _, child := range m.modules {
		child.Walk(fn)
	}
}
