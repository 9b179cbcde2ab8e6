package cmdkit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// staticCheck is a Check with a fixed verdict. It counts calls and can delay
// to shake out ordering assumptions in concurrent evaluation.
type staticCheck struct {
	name   string
	ok     bool
	reason string
	err    error
	delay  time.Duration
	calls  atomic.Int32
}

func (c *staticCheck) Name() string {
	return c.name
}

func (c *staticCheck) Allowed(_ context.Context, _ *Invocation) (bool, string, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.err != nil {
		return false, "", c.err
	}
	return c.ok, c.reason, nil
}

func passing(name string) *staticCheck {
	return &staticCheck{name: name, ok: true}
}

func failing(name, reason string) *staticCheck {
	return &staticCheck{name: name, ok: false, reason: reason}
}

// scriptedProvider is a CooldownProvider answering from a bucket-indexed
// script. It counts calls and can delay per bucket to randomize completion
// order.
type scriptedProvider struct {
	mu      sync.Mutex
	retries map[CooldownBucket]time.Duration
	delays  map[CooldownBucket]time.Duration
	err     error
	calls   int
}

func (p *scriptedProvider) CheckCooldown(_ context.Context, cd Cooldown, _ *Invocation) (time.Duration, error) {
	p.mu.Lock()
	p.calls++
	retry := p.retries[cd.Bucket]
	delay := p.delays[cd.Bucket]
	err := p.err
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return 0, err
	}
	return retry, nil
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// memoryRecorder is an AuditRecorder collecting records in memory.
type memoryRecorder struct {
	mu      sync.Mutex
	records []InvocationRecord
	err     error
}

func (r *memoryRecorder) Record(_ context.Context, rec InvocationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *memoryRecorder) last() InvocationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[len(r.records)-1]
}

func testInvocation() *Invocation {
	return &Invocation{
		InvokerID: "user-1",
		ChannelID: "chan-1",
		GuildID:   "guild-1",
	}
}
