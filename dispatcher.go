package cmdkit

import (
	"context"
	"fmt"
	"strings"
)

// Dispatcher is the entry point turning raw text into an authorized command
// run: resolution against the alias map, the enabled gate, the check gate,
// the cooldown gate, then the middleware-wrapped handler.
//
// The alias map is built once from the module tree; fullAliases may contain
// duplicates (composition never deduplicates), so the first command
// registering a given alias keeps it.
type Dispatcher struct {
	root       *Module
	commands   map[string]*Command
	separator  string
	provider   CooldownProvider
	audit      AuditRecorder
	middleware []Middleware
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCooldownProvider injects the cooldown state provider. Without one,
// cooldown evaluation is a no-op and every command behaves as unlimited.
func WithCooldownProvider(p CooldownProvider) DispatcherOption {
	return func(d *Dispatcher) {
		d.provider = p
	}
}

// WithAuditRecorder injects a recorder that receives one record per
// dispatch outcome.
func WithAuditRecorder(r AuditRecorder) DispatcherOption {
	return func(d *Dispatcher) {
		d.audit = r
	}
}

// WithMiddleware wraps every command handler, first middleware outermost.
func WithMiddleware(mws ...Middleware) DispatcherOption {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, mws...)
	}
}

// NewDispatcher builds the alias lookup for a finished command tree.
// A command that composed to no reachable alias is a construction-time
// error.
func NewDispatcher(root *Module, opts ...DispatcherOption) (*Dispatcher, error) {
	d := &Dispatcher{
		root:      root,
		commands:  make(map[string]*Command),
		separator: root.separator,
	}
	for _, opt := range opts {
		opt(d)
	}

	var buildErr error
	root.Walk(func(cmd *Command) {
		reachable := false
		for _, alias := range cmd.fullAliases {
			if alias == "" {
				continue
			}
			reachable = true
			if _, taken := d.commands[alias]; !taken {
				d.commands[alias] = cmd
			}
		}
		if !reachable && buildErr == nil {
			buildErr = fmt.Errorf("%w: command %q composed to no reachable alias", ErrInvalidAlias, cmd.Name())
		}
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return d, nil
}

// Lookup returns the command registered under a qualified alias.
func (d *Dispatcher) Lookup(alias string) (*Command, bool) {
	cmd, ok := d.commands[alias]
	return cmd, ok
}

// Commands returns every registered command once, in tree declaration order.
func (d *Dispatcher) Commands() []*Command {
	var list []*Command
	d.root.Walk(func(cmd *Command) {
		list = append(list, cmd)
	})
	return list
}

// Resolve matches raw input to a command. Input is whitespace-tokenized and
// the longest alias-joined prefix wins; leftover tokens become the
// command's arguments.
func (d *Dispatcher) Resolve(raw string) (*Command, []string, error) {
	tokens := strings.Fields(raw)
	for i := len(tokens); i >= 1; i-- {
		candidate := strings.Join(tokens[:i], d.separator)
		if cmd, ok := d.commands[candidate]; ok {
			return cmd, tokens[i:], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, raw)
}

// Dispatch runs the full pipeline for one invocation.
//
// The returned result is non-successful for check failures and cooldown
// limits, which are ordinary outcomes meant for the invoker. Unknown input,
// disabled commands, predicate/provider faults and handler errors come back
// as the error instead. When an audit recorder is configured, every outcome
// is recorded; a recorder failure is reported only if the dispatch itself
// did not already error.
func (d *Dispatcher) Dispatch(ctx context.Context, inv *Invocation, raw string) (res *Result, err error) {
	var cmd *Command

	defer func() {
		if d.audit == nil {
			return
		}
		if aerr := d.audit.Record(ctx, newInvocationRecord(inv, cmd, raw, res, err)); aerr != nil && err == nil {
			err = aerr
		}
	}()

	cmd, args, err := d.Resolve(raw)
	if err != nil {
		return nil, err
	}

	if !cmd.EffectiveEnabled() {
		return nil, fmt.Errorf("%w: %s", ErrCommandDisabled, cmd.Name())
	}

	res, err = EvaluateChecks(ctx, cmd, inv)
	if err != nil {
		return nil, err
	}
	if !res.Successful() {
		return res, nil
	}

	res, err = d.EvaluateCooldowns(ctx, cmd, inv)
	if err != nil {
		return nil, err
	}
	if !res.Successful() {
		return res, nil
	}

	if cmd.handler == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, cmd.Name())
	}
	if err := chain(cmd.handler, d.middleware)(WithInvocation(ctx, inv), inv, args); err != nil {
		return nil, err
	}
	return resultSuccessful, nil
}
