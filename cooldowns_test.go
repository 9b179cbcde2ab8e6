package cmdkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCooldown tests descriptor construction and validation.
func TestNewCooldown(t *testing.T) {
	cd, err := NewCooldown(BucketUser, 3, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, BucketUser, cd.Bucket)
	assert.Equal(t, 3, cd.Amount)
	assert.Equal(t, 30*time.Second, cd.Period)

	_, err = NewCooldown(BucketUser, 0, time.Second)
	assert.True(t, IsInvalidCooldown(err))

	_, err = NewCooldown(BucketUser, 1, 0)
	assert.True(t, IsInvalidCooldown(err))

	_, err = NewCooldown(BucketUser, 1, -time.Second)
	assert.True(t, IsInvalidCooldown(err))
}

// TestParseCooldown tests textual period parsing, including the day unit.
func TestParseCooldown(t *testing.T) {
	cd, err := ParseCooldown(BucketChannel, 5, "90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cd.Period)

	cd, err = ParseCooldown(BucketChannel, 5, "1.5h")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cd.Period)

	cd, err = ParseCooldown(BucketChannel, 5, "1d")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cd.Period)

	cd, err = ParseCooldown(BucketChannel, 5, "0.5d")
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cd.Period)
}

// TestParseCooldownUnrecognizedUnit tests that a bad unit is a
// construction-time error.
func TestParseCooldownUnrecognizedUnit(t *testing.T) {
	_, err := ParseCooldown(BucketUser, 1, "10 fortnights")
	require.Error(t, err)
	assert.True(t, IsInvalidCooldown(err))

	_, err = ParseCooldown(BucketUser, 1, "10x")
	assert.True(t, IsInvalidCooldown(err))

	_, err = ParseCooldown(BucketUser, 1, "")
	assert.True(t, IsInvalidCooldown(err))
}

// TestMustCooldown tests that misconfiguration panics at build time.
func TestMustCooldown(t *testing.T) {
	assert.NotPanics(t, func() {
		MustCooldown(BucketUser, 3, "30s")
	})
	assert.Panics(t, func() {
		MustCooldown(BucketUser, 3, "30 parsecs")
	})
}

// TestCooldownKeys tests attach-time and explicit keying.
func TestCooldownKeys(t *testing.T) {
	cmd := NewRoot().Command("ping").Cooldown(MustCooldown(BucketUser, 1, "10s"))
	assert.Equal(t, "ping", cmd.Cooldowns()[0].Key())

	keyed := MustCooldown(BucketUser, 1, "10s").Keyed("shared")
	cmd2 := NewRoot().Command("pong").Cooldown(keyed)
	assert.Equal(t, "shared", cmd2.Cooldowns()[0].Key())
}

// TestCooldownBucketString tests the rendered kind names.
func TestCooldownBucketString(t *testing.T) {
	assert.Equal(t, "user", BucketUser.String())
	assert.Equal(t, "channel", BucketChannel.String())
	assert.Equal(t, "guild", BucketGuild.String())
	assert.Equal(t, "global", BucketGlobal.String())
}

// TestEvaluateCooldownsNoProvider tests that without a provider the
// evaluation succeeds without inspecting descriptors.
func TestEvaluateCooldownsNoProvider(t *testing.T) {
	root := NewRoot()
	cmd := root.Command("ping").Cooldown(MustCooldown(BucketUser, 1, "10s"))
	d, err := NewDispatcher(root)
	require.NoError(t, err)

	res, err := d.EvaluateCooldowns(context.Background(), cmd, testInvocation())
	require.NoError(t, err)
	assert.True(t, res.Successful())
}

// TestEvaluateCooldownsNoDescriptors tests that a command without cooldowns
// never calls the provider.
func TestEvaluateCooldownsNoDescriptors(t *testing.T) {
	root := NewRoot()
	cmd := root.Command("ping")
	p := &scriptedProvider{}
	d, err := NewDispatcher(root, WithCooldownProvider(p))
	require.NoError(t, err)

	res, err := d.EvaluateCooldowns(context.Background(), cmd, testInvocation())
	require.NoError(t, err)
	assert.True(t, res.Successful())
	assert.Equal(t, 0, p.callCount())
}

// TestEvaluateCooldownsAggregates tests that every limiting descriptor is
// reported at once, in declaration order, with no short-circuit, even when
// the concurrent provider calls complete out of order.
func TestEvaluateCooldownsAggregates(t *testing.T) {
	root := NewRoot()
	cmd := root.Command("ping").Cooldown(
		MustCooldown(BucketUser, 1, "10s"),
		MustCooldown(BucketChannel, 1, "10s"),
		MustCooldown(BucketGuild, 1, "10s"),
	)

	p := &scriptedProvider{
		retries: map[CooldownBucket]time.Duration{
			BucketUser:  3 * time.Second,
			BucketGuild: 9 * time.Second,
		},
		delays: map[CooldownBucket]time.Duration{
			// The first declared descriptor finishes last.
			BucketUser: 30 * time.Millisecond,
		},
	}
	d, err := NewDispatcher(root, WithCooldownProvider(p))
	require.NoError(t, err)

	res, err := d.EvaluateCooldowns(context.Background(), cmd, testInvocation())
	require.NoError(t, err)
	assert.Equal(t, StatusOnCooldown, res.Status())
	assert.Equal(t, 3, p.callCount(), "every descriptor is queried, limited or not")

	failures := res.CooldownFailures()
	require.Len(t, failures, 2)
	assert.Equal(t, BucketUser, failures[0].Cooldown.Bucket)
	assert.Equal(t, 3*time.Second, failures[0].RetryAfter)
	assert.Equal(t, BucketGuild, failures[1].Cooldown.Bucket)
	assert.Equal(t, 9*time.Second, failures[1].RetryAfter)
}

// TestEvaluateCooldownsAllClear tests the successful path with a configured
// provider.
func TestEvaluateCooldownsAllClear(t *testing.T) {
	root := NewRoot()
	cmd := root.Command("ping").Cooldown(
		MustCooldown(BucketUser, 1, "10s"),
		MustCooldown(BucketChannel, 1, "10s"),
	)
	p := &scriptedProvider{}
	d, err := NewDispatcher(root, WithCooldownProvider(p))
	require.NoError(t, err)

	res, err := d.EvaluateCooldowns(context.Background(), cmd, testInvocation())
	require.NoError(t, err)
	assert.True(t, res.Successful())
	assert.Equal(t, 2, p.callCount())
}

// TestEvaluateCooldownsProviderFault tests that a provider fault aborts the
// evaluation and propagates.
func TestEvaluateCooldownsProviderFault(t *testing.T) {
	root := NewRoot()
	cmd := root.Command("ping").Cooldown(MustCooldown(BucketUser, 1, "10s"))
	boom := errors.New("bucket store down")
	d, err := NewDispatcher(root, WithCooldownProvider(&scriptedProvider{err: boom}))
	require.NoError(t, err)

	res, err := d.EvaluateCooldowns(context.Background(), cmd, testInvocation())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res)
}
