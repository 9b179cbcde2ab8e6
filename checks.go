package cmdkit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Check is a permission predicate over an invocation.
//
// A check either succeeds (ok true, empty reason) or fails with a
// human-readable reason meant for the invoker. A non-nil error is a fault in
// the predicate itself (broken lookup, unreachable backend) and aborts the
// whole evaluation instead of being reported as a failed check.
//
// Checks must be idempotent and must not mutate the command tree; they may
// consult external state such as role membership or feature flags, and may
// block, so they receive a context.
type Check interface {
	// Name identifies the check in results and renderings.
	Name() string

	// Allowed evaluates the check for one invocation.
	Allowed(ctx context.Context, inv *Invocation) (ok bool, reason string, err error)
}

// checkEntry pairs a check with its optional group label at its attachment
// site. Entries keep declaration order; that order is the order failures are
// reported in.
type checkEntry struct {
	check Check
	group string
}

type checkFunc struct {
	name string
	fn   func(ctx context.Context, inv *Invocation) (bool, string, error)
}

func (c *checkFunc) Name() string {
	return c.name
}

func (c *checkFunc) Allowed(ctx context.Context, inv *Invocation) (bool, string, error) {
	return c.fn(ctx, inv)
}

// NewCheck wraps a plain function as a Check.
//
// Example:
//
//	requireStaff := cmdkit.NewCheck("staff", func(ctx context.Context, inv *cmdkit.Invocation) (bool, string, error) {
//	    if roles.Has(inv.InvokerID, "staff") {
//	        return true, "", nil
//	    }
//	    return false, "you need the staff role", nil
//	})
func NewCheck(name string, fn func(ctx context.Context, inv *Invocation) (bool, string, error)) Check {
	return &checkFunc{name: name, fn: fn}
}

// EvaluateChecks decides whether inv may run cmd.
//
// Module checks form a mandatory prerequisite gate: every ancestor module's
// own checks are evaluated first, outermost ancestor first, and the first
// level that fails produces the result without ever running the levels below
// it. Only when the whole module chain passes are the command's own checks
// evaluated.
//
// Within a level all checks run concurrently and are fully awaited; there is
// no early cancellation inside a level. A check fault aborts evaluation and
// is returned as the error, with no result.
func EvaluateChecks(ctx context.Context, cmd *Command, inv *Invocation) (*Result, error) {
	res, err := evaluateModuleGate(ctx, cmd, cmd.module, inv)
	if err != nil || !res.Successful() {
		return res, err
	}

	failures, err := evaluateLevel(ctx, cmd.checks, inv)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return newChecksFailed(cmd, failures), nil
	}
	return resultSuccessful, nil
}

// evaluateModuleGate evaluates the own checks of every module from the root
// of the chain down to m, short-circuiting on the first failed level.
func evaluateModuleGate(ctx context.Context, cmd *Command, m *Module, inv *Invocation) (*Result, error) {
	if m == nil {
		return resultSuccessful, nil
	}
	if m.parent != nil {
		res, err := evaluateModuleGate(ctx, cmd, m.parent, inv)
		if err != nil || !res.Successful() {
			return res, err
		}
	}

	failures, err := evaluateLevel(ctx, m.checks, inv)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return newChecksFailed(cmd, failures), nil
	}
	return resultSuccessful, nil
}

// evaluateLevel runs one level's checks concurrently and applies the
// grouping rule.
//
// All ungrouped checks form a single implicit bucket that fails if any
// member fails (AND). Checks sharing an explicit group form a bucket that
// fails only if every member fails (OR). The reported failures are the
// individual failed checks of failed buckets, in declaration order; a check
// that failed inside a passing OR-bucket is not reported.
func evaluateLevel(ctx context.Context, entries []checkEntry, inv *Invocation) ([]CheckFailure, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	type outcome struct {
		ok     bool
		reason string
	}
	outcomes := make([]outcome, len(entries))

	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() error {
			ok, reason, err := e.check.Allowed(ctx, inv)
			if err != nil {
				return err
			}
			outcomes[i] = outcome{ok: ok, reason: reason}
			return nil
		})
	}
	// Wait blocks until every check has finished, then surfaces the first
	// fault; partial results are never acted upon.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	groupSize := make(map[string]int)
	groupFailed := make(map[string]int)
	for i, e := range entries {
		if e.group == "" {
			continue
		}
		groupSize[e.group]++
		if !outcomes[i].ok {
			groupFailed[e.group]++
		}
	}

	var failures []CheckFailure
	for i, e := range entries {
		if outcomes[i].ok {
			continue
		}
		// A failed ungrouped check always condemns the implicit bucket;
		// a grouped check is reported only when its whole group failed.
		if e.group == "" || groupFailed[e.group] == groupSize[e.group] {
			failures = append(failures, CheckFailure{Check: e.check, Reason: outcomes[i].reason})
		}
	}
	return failures, nil
}
