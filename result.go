package cmdkit

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Status is the terminal shape of an evaluation result.
type Status int

const (
	// StatusSuccessful means every gate passed.
	StatusSuccessful Status = iota
	// StatusChecksFailed means a check level condemned the invocation.
	StatusChecksFailed
	// StatusOnCooldown means at least one cooldown is limiting the
	// invocation.
	StatusOnCooldown
)

// String returns the status in audit-record form.
func (s Status) String() string {
	switch s {
	case StatusSuccessful:
		return "successful"
	case StatusChecksFailed:
		return "checks_failed"
	case StatusOnCooldown:
		return "on_cooldown"
	}
	return "unknown"
}

// CheckFailure is one failed check and the reason it gave.
type CheckFailure struct {
	Check  Check
	Reason string
}

// CooldownFailure is one limiting cooldown and how long until it clears.
type CooldownFailure struct {
	Cooldown   Cooldown
	RetryAfter time.Duration
}

// Result is the outcome of evaluating checks or cooldowns for one
// invocation. It is immutable once constructed; the rendered reason is
// computed on first access and cached, exactly once even under concurrent
// readers.
type Result struct {
	status           Status
	command          *Command
	checkFailures    []CheckFailure
	cooldownFailures []CooldownFailure

	renderOnce sync.Once
	reason     string
}

// resultSuccessful is the shared no-payload success result.
var resultSuccessful = &Result{status: StatusSuccessful}

func newChecksFailed(cmd *Command, failures []CheckFailure) *Result {
	return &Result{
		status:        StatusChecksFailed,
		command:       cmd,
		checkFailures: failures,
	}
}

func newOnCooldown(cmd *Command, failures []CooldownFailure) *Result {
	return &Result{
		status:           StatusOnCooldown,
		command:          cmd,
		cooldownFailures: failures,
	}
}

// Status returns the result's terminal shape.
func (r *Result) Status() Status {
	return r.status
}

// Successful reports whether every gate passed.
func (r *Result) Successful() bool {
	return r.status == StatusSuccessful
}

// Command returns the command the result is about, nil for a successful
// result.
func (r *Result) Command() *Command {
	return r.command
}

// CheckFailures returns the failed checks in declaration order. Non-empty
// exactly when the status is StatusChecksFailed.
func (r *Result) CheckFailures() []CheckFailure {
	return append([]CheckFailure(nil), r.checkFailures...)
}

// CooldownFailures returns the limiting cooldowns in declaration order.
// Non-empty exactly when the status is StatusOnCooldown.
func (r *Result) CooldownFailures() []CooldownFailure {
	return append([]CooldownFailure(nil), r.cooldownFailures...)
}

// Reason returns a human-readable explanation of the result, suitable for
// showing to the invoker. Empty for a successful result.
func (r *Result) Reason() string {
	r.renderOnce.Do(func() {
		r.reason = r.render()
	})
	return r.reason
}

func (r *Result) render() string {
	switch r.status {
	case StatusChecksFailed:
		reasons := make([]string, len(r.checkFailures))
		for i, f := range r.checkFailures {
			reasons[i] = f.Reason
		}
		return strings.Join(reasons, "; ")

	case StatusOnCooldown:
		if len(r.cooldownFailures) == 1 {
			return fmt.Sprintf("on cooldown, retry after %s", r.cooldownFailures[0].RetryAfter)
		}
		parts := make([]string, len(r.cooldownFailures))
		for i, f := range r.cooldownFailures {
			parts[i] = fmt.Sprintf("%s cooldown, retry after %s", f.Cooldown.Bucket, f.RetryAfter)
		}
		return "on cooldown: " + strings.Join(parts, "; ")
	}
	return ""
}
