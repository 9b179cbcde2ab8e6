// Package cmdkit provides the authorization and rate-limiting pipeline for
// text-command dispatch frameworks.
//
// CmdKit sits between raw command resolution and command execution: given a
// fully-built command and an invocation, it decides whether the invoker may
// run it (permission checks with AND/OR grouping) and whether the command is
// currently rate limited (cooldowns against a pluggable provider).
//
// # Core Concepts
//
// Module: a named grouping node in the command tree. A module owns its
// commands and child modules, carries its own checks (a mandatory gate for
// everything beneath it) and contributes alias prefixes to its children.
//
// Command: a single invocable unit. It carries checks, cooldown descriptors,
// a handler, and its fully-qualified aliases, which are composed exactly once
// when the command is built.
//
// Check: a boolean predicate over an invocation. Ungrouped checks must all
// pass (AND); checks sharing a group label pass if any one of them passes
// (OR). Module-level checks gate command-level checks: if a module's own
// checks fail, the command's checks are never evaluated.
//
// Cooldown: a rate-limit descriptor (amount per period, scoped to a bucket
// such as user or channel). Descriptors hold no state; state lives in a
// CooldownProvider. All of a command's cooldowns are always evaluated, so a
// single result reports every active limit at once.
//
// # Key Features
//
//   - Explicit registration: checks and cooldowns are attached with a fluent
//     builder, no annotation scanning
//   - Grouped checks: OR within a group, AND across groups and ungrouped
//   - Concurrent evaluation: each level's checks and all cooldown queries run
//     in parallel and are fully awaited; reported failures keep declaration
//     order
//   - Empty aliases: a command (or module) may declare the empty alias to act
//     as the default under its parent's name
//   - Runtime toggles: modules and commands can be enabled and disabled
//     atomically while dispatching
//   - Optional audit trail: every dispatch outcome can be recorded through
//     dbkit/bun
//
// # Basic Usage
//
//	// 1. Build the command tree (at application startup)
//	root := cmdkit.NewRoot()
//
//	mod := root.Group("mod").
//	    Check(requireStaff)
//
//	mod.Command("ban", "b").
//	    CheckGroup("elevated", requireAdmin, requireOwner).
//	    Cooldown(cmdkit.MustCooldown(cmdkit.BucketUser, 3, "30s")).
//	    Handler(banHandler)
//
//	// 2. Create the dispatcher
//	d, err := cmdkit.NewDispatcher(root,
//	    cmdkit.WithCooldownProvider(cmdkit.NewMemoryProvider()),
//	)
//
//	// 3. Dispatch invocations
//	inv := &cmdkit.Invocation{InvokerID: userID, ChannelID: channelID, Raw: text}
//	res, err := d.Dispatch(ctx, inv, text)
//	if err != nil {
//	    // predicate/provider fault, unknown or disabled command
//	}
//	if !res.Successful() {
//	    reply(res.Reason()) // "missing the staff role" / "retry after 30s"
//	}
//
// The two evaluators are also usable directly, without the dispatcher:
//
//	res, err := cmdkit.EvaluateChecks(ctx, cmd, inv)
//	res, err = d.EvaluateCooldowns(ctx, cmd, inv)
//
// Check failures and cooldown limits are ordinary data-carrying results meant
// to be shown to the invoker; only faults (a predicate or provider call that
// itself errors) surface as Go errors.
package cmdkit
