// Package guard protects lists from rapid-fire additions and unbounded growth.
package guard

import (
	"sync"
	"time"
)

const (
	// MinAddInterval is the minimum time between successive item additions.
	MinAddInterval = 300 * time.Millisecond

	// MaxListSize is the hard cap on items per list.
	MaxListSize = 100
)

// AddResult reports whether an addition may proceed, and if not, how long
// the caller should wait.
type AddResult struct {
	Allowed bool          `json:"allowed"`
	Wait    time.Duration `json:"wait,omitempty"`
}

// AddLimiter enforces MinAddInterval between additions. It is a plain
// timestamp comparison, not a token bucket; state lives only in memory for
// the lifetime of the owning component.
type AddLimiter struct {
	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

func NewAddLimiter() *AddLimiter {
	return &AddLimiter{
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// CanAdd records an attempt for key and reports whether enough time has
// passed since the previous one.
func (l *AddLimiter) CanAdd(key string) AddResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if prev, ok := l.last[key]; ok {
		if elapsed := now.Sub(prev); elapsed < MinAddInterval {
			return AddResult{Wait: MinAddInterval - elapsed}
		}
	}
	l.last[key] = now
	return AddResult{Allowed: true}
}

// Cleanup drops keys whose last attempt is older than the given age.
func (l *AddLimiter) Cleanup(age time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-age)
	for k, t := range l.last {
		if t.Before(cutoff) {
			delete(l.last, k)
		}
	}
}

// SizeResult reports whether a list may accept another item.
type SizeResult struct {
	Allowed bool `json:"allowed"`
	Full    bool `json:"full,omitempty"`
}

// CheckListSize rejects additions once a list holds MaxListSize items.
func CheckListSize(count int) SizeResult {
	if count >= MaxListSize {
		return SizeResult{Full: true}
	}
	return SizeResult{Allowed: true}
}
