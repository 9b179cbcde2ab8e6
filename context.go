package cmdkit

import (
	"context"
)

// Invocation describes one attempt to run a command: who asked, where, and
// the raw text they sent. Checks and cooldown providers receive it read-only;
// Meta carries anything host-specific (member roles, platform session, ...).
type Invocation struct {
	// InvokerID identifies the user attempting the command.
	InvokerID string

	// ChannelID identifies the channel or conversation, if any.
	ChannelID string

	// GuildID identifies the guild/server/workspace, if any.
	GuildID string

	// Raw is the full text as received, before resolution.
	Raw string

	// Meta carries arbitrary host data for checks and providers.
	Meta map[string]any
}

// Context keys for CmdKit values.
type contextKey string

const (
	contextKeyInvocation contextKey = "cmdkit:invocation"
)

// WithInvocation adds an invocation to the context so deeply nested
// collaborators (handlers, checks, providers) can reach it without plumbing.
func WithInvocation(ctx context.Context, inv *Invocation) context.Context {
	return context.WithValue(ctx, contextKeyInvocation, inv)
}

// InvocationFrom retrieves the invocation from context.
// Returns nil if not set.
func InvocationFrom(ctx context.Context) *Invocation {
	if v := ctx.Value(contextKeyInvocation); v != nil {
		if inv, ok := v.(*Invocation); ok {
			return inv
		}
	}
	return nil
}

// MustInvocationFrom retrieves the invocation from context.
// Panics if not set.
func MustInvocationFrom(ctx context.Context) *Invocation {
	inv := InvocationFrom(ctx)
	if inv == nil {
		panic("cmdkit: invocation not in context")
	}
	return inv
}
