package guard

import (
	"testing"
	"time"
)

func TestAddLimiter(t *testing.T) {
	l := NewAddLimiter()
	now := time.Now()
	l.now = func() time.Time { return now }

	if res := l.CanAdd("s1"); !res.Allowed {
		t.Fatal("first add should be allowed")
	}

	res := l.CanAdd("s1")
	if res.Allowed {
		t.Fatal("immediate second add should be denied")
	}
	if res.Wait <= 0 || res.Wait > MinAddInterval {
		t.Errorf("wait = %v, want in (0, %v]", res.Wait, MinAddInterval)
	}

	// A different key is independent
	if res := l.CanAdd("s2"); !res.Allowed {
		t.Error("different key should be allowed")
	}

	// After the interval passes the same key is allowed again
	now = now.Add(MinAddInterval)
	if res := l.CanAdd("s1"); !res.Allowed {
		t.Error("add after interval should be allowed")
	}
}

func TestAddLimiterDeniedAttemptDoesNotExtendWindow(t *testing.T) {
	l := NewAddLimiter()
	now := time.Now()
	l.now = func() time.Time { return now }

	l.CanAdd("k")
	now = now.Add(150 * time.Millisecond)
	l.CanAdd("k") // denied, must not reset the timestamp
	now = now.Add(160 * time.Millisecond)
	if res := l.CanAdd("k"); !res.Allowed {
		t.Error("310ms after the allowed add, the next add should pass")
	}
}

func TestAddLimiterCleanup(t *testing.T) {
	l := NewAddLimiter()
	now := time.Now()
	l.now = func() time.Time { return now }

	l.CanAdd("old")
	now = now.Add(time.Hour)
	l.CanAdd("fresh")
	l.Cleanup(time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.last["old"]; ok {
		t.Error("old key should have been cleaned up")
	}
	if _, ok := l.last["fresh"]; !ok {
		t.Error("fresh key should remain")
	}
}

func TestCheckListSize(t *testing.T) {
	if res := CheckListSize(0); !res.Allowed {
		t.Error("empty list should accept items")
	}
	if res := CheckListSize(MaxListSize - 1); !res.Allowed {
		t.Error("list at 99 should accept one more")
	}
	res := CheckListSize(MaxListSize)
	if res.Allowed || !res.Full {
		t.Errorf("list at cap: got %+v, want denied and full", res)
	}
	if res := CheckListSize(MaxListSize + 5); res.Allowed {
		t.Error("oversized list must not accept items")
	}
}
