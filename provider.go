package cmdkit

import (
	"context"
	"sync"
	"time"
)

// MemoryProvider is a CooldownProvider keeping fixed-window state in memory.
// It is good enough for a single-process host; anything that must survive a
// restart or span processes belongs in a provider of your own.
//
// State is keyed by the descriptor (including its attach-time key) and the
// invocation field its bucket selects, so two commands with identical
// descriptors never share a window.
type MemoryProvider struct {
	mu      sync.Mutex
	windows map[windowKey]*window
	now     func() time.Time // swapped in tests
}

type windowKey struct {
	key    string
	bucket CooldownBucket
	scope  string
	amount int
	period time.Duration
}

type window struct {
	used    int
	resetAt time.Time
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		windows: make(map[windowKey]*window),
		now:     time.Now,
	}
}

// CheckCooldown consumes one use from the descriptor's window and reports
// how long the invoker must wait once the window is exhausted.
func (p *MemoryProvider) CheckCooldown(_ context.Context, cd Cooldown, inv *Invocation) (time.Duration, error) {
	k := windowKey{
		key:    cd.key,
		bucket: cd.Bucket,
		scope:  bucketScope(cd.Bucket, inv),
		amount: cd.Amount,
		period: cd.Period,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	w, ok := p.windows[k]
	if !ok || !now.Before(w.resetAt) {
		p.windows[k] = &window{used: 1, resetAt: now.Add(cd.Period)}
		return 0, nil
	}
	if w.used < cd.Amount {
		w.used++
		return 0, nil
	}
	return w.resetAt.Sub(now), nil
}

// Reset drops all windows, clearing every active cooldown.
func (p *MemoryProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.windows = make(map[windowKey]*window)
}

// bucketScope picks the invocation field a bucket kind is keyed on.
func bucketScope(b CooldownBucket, inv *Invocation) string {
	switch b {
	case BucketUser:
		return inv.InvokerID
	case BucketChannel:
		return inv.ChannelID
	case BucketGuild:
		return inv.GuildID
	}
	return ""
}
