package cmdkit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// CooldownBucket selects which part of an invocation a cooldown's state is
// scoped to.
type CooldownBucket int

const (
	// BucketUser scopes the limit per invoking user.
	BucketUser CooldownBucket = iota
	// BucketChannel scopes the limit per channel.
	BucketChannel
	// BucketGuild scopes the limit per guild.
	BucketGuild
	// BucketGlobal applies the limit across all invocations.
	BucketGlobal
)

// String returns the bucket's kind as used in rendered reasons.
func (b CooldownBucket) String() string {
	switch b {
	case BucketUser:
		return "user"
	case BucketChannel:
		return "channel"
	case BucketGuild:
		return "guild"
	case BucketGlobal:
		return "global"
	}
	return "unknown"
}

// Cooldown declares a rate limit: at most Amount invocations per Period,
// scoped to Bucket. The descriptor itself holds no state; remaining uses and
// reset times live in the CooldownProvider, keyed by the descriptor and the
// invocation's bucket scope.
type Cooldown struct {
	Bucket CooldownBucket
	Amount int
	Period time.Duration

	// key separates provider state between commands carrying otherwise
	// identical descriptors. Command.Cooldown fills it at attach time.
	key string
}

// NewCooldown builds a cooldown descriptor. Misconfiguration (a non-positive
// amount or period) is a construction-time error, never deferred to
// invocation time.
func NewCooldown(bucket CooldownBucket, amount int, period time.Duration) (Cooldown, error) {
	if amount < 1 {
		return Cooldown{}, fmt.Errorf("%w: amount must be at least 1, got %d", ErrInvalidCooldown, amount)
	}
	if period <= 0 {
		return Cooldown{}, fmt.Errorf("%w: period must be positive, got %s", ErrInvalidCooldown, period)
	}
	return Cooldown{Bucket: bucket, Amount: amount, Period: period}, nil
}

// ParseCooldown builds a cooldown descriptor from a textual period. It
// accepts everything time.ParseDuration does ("30s", "1.5h", "90m") plus a
// day unit ("1d", "0.5d"). An unrecognized unit is a construction-time
// ErrInvalidCooldown.
func ParseCooldown(bucket CooldownBucket, amount int, period string) (Cooldown, error) {
	d, err := parsePeriod(period)
	if err != nil {
		return Cooldown{}, err
	}
	return NewCooldown(bucket, amount, d)
}

// MustCooldown is ParseCooldown that panics on misconfiguration, for use in
// command tree declarations where an invalid descriptor is a programming
// error.
//
// Example:
//
//	cmd.Cooldown(cmdkit.MustCooldown(cmdkit.BucketUser, 3, "30s"))
func MustCooldown(bucket CooldownBucket, amount int, period string) Cooldown {
	cd, err := ParseCooldown(bucket, amount, period)
	if err != nil {
		panic(err)
	}
	return cd
}

// Keyed returns a copy of the descriptor with an explicit provider state
// key, overriding the command-name key set at attach time.
func (c Cooldown) Keyed(key string) Cooldown {
	c.key = key
	return c
}

// Key returns the provider state key.
func (c Cooldown) Key() string {
	return c.key
}

func parsePeriod(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		if n, err := strconv.ParseFloat(days, 64); err == nil {
			return time.Duration(n * float64(24*time.Hour)), nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: unrecognized period %q", ErrInvalidCooldown, s)
	}
	return d, nil
}

// CooldownProvider answers whether a descriptor is currently limiting an
// invocation. A zero retryAfter means not limited; a positive one is how
// long the invoker must wait. The provider owns all bucket state and its
// windowing strategy; it is asked once per descriptor per invocation.
type CooldownProvider interface {
	CheckCooldown(ctx context.Context, cd Cooldown, inv *Invocation) (retryAfter time.Duration, err error)
}

// EvaluateCooldowns decides whether inv is rate limited for cmd.
//
// Without a configured provider the evaluation is a no-op: it returns a
// successful result without looking at the command's descriptors. Otherwise
// every descriptor is queried concurrently and fully awaited. A descriptor
// that turns out limited never stops its siblings from being checked, so the
// result carries every active limit at once, in declaration order. A
// provider fault aborts the evaluation and is returned as the error.
func (d *Dispatcher) EvaluateCooldowns(ctx context.Context, cmd *Command, inv *Invocation) (*Result, error) {
	if d.provider == nil {
		return resultSuccessful, nil
	}
	if len(cmd.cooldowns) == 0 {
		return resultSuccessful, nil
	}

	retries := make([]time.Duration, len(cmd.cooldowns))

	var g errgroup.Group
	for i, cd := range cmd.cooldowns {
		g.Go(func() error {
			retry, err := d.provider.CheckCooldown(ctx, cd, inv)
			if err != nil {
				return err
			}
			retries[i] = retry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failures []CooldownFailure
	for i, cd := range cmd.cooldowns {
		if retries[i] > 0 {
			failures = append(failures, CooldownFailure{Cooldown: cd, RetryAfter: retries[i]})
		}
	}
	if len(failures) > 0 {
		return newOnCooldown(cmd, failures), nil
	}
	return resultSuccessful, nil
}
