package services

import (
	"sync"
	"testing"
	"time"
)

// testWindow returns a window driven by a virtual clock so expiry can be
// exercised without sleeping.
func testWindow(maxRequests int, window time.Duration) (*slidingWindow, *time.Time) {
	w := newSlidingWindow(maxRequests, window)
	now := time.UnixMilli(1_700_000_000_000)
	w.now = func() time.Time { return now }
	return w, &now
}

func TestSlidingWindow_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	w, now := testWindow(5, 10*time.Minute)

	for i := 0; i < 5; i++ {
		if w.IsRateLimited("user-1") {
			t.Fatalf("request %d should not be limited", i+1)
		}
	}
	if !w.IsRateLimited("user-1") {
		t.Fatalf("sixth request should be limited")
	}

	*now = now.Add(10*time.Minute + time.Millisecond)
	if w.IsRateLimited("user-1") {
		t.Fatalf("quota should free once the window has passed")
	}
}

func TestSlidingWindow_LimitedRequestNotRecorded(t *testing.T) {
	t.Parallel()

	w, now := testWindow(2, time.Minute)

	w.IsRateLimited("k")
	w.IsRateLimited("k")
	for i := 0; i < 10; i++ {
		if !w.IsRateLimited("k") {
			t.Fatalf("attempt %d should be limited", i)
		}
	}

	// Only the two recorded requests age out, so the quota frees fully.
	*now = now.Add(time.Minute + time.Millisecond)
	if w.IsRateLimited("k") {
		t.Fatalf("expected quota to free after the window passed")
	}
	if got := w.RemainingRequests("k"); got != 1 {
		t.Fatalf("expected 1 remaining, got %d", got)
	}
}

func TestSlidingWindow_BoundaryTimestampExpires(t *testing.T) {
	t.Parallel()

	w, now := testWindow(1, time.Minute)

	if w.IsRateLimited("k") {
		t.Fatalf("first request should pass")
	}

	// Exactly window-old is expired; strictly-newer survives.
	*now = now.Add(time.Minute)
	if w.IsRateLimited("k") {
		t.Fatalf("timestamp exactly at the boundary should have expired")
	}
}

func TestSlidingWindow_BoundaryTimestampSurvivesJustInside(t *testing.T) {
	t.Parallel()

	w, now := testWindow(1, time.Minute)

	w.IsRateLimited("k")
	*now = now.Add(time.Minute - time.Millisecond)
	if !w.IsRateLimited("k") {
		t.Fatalf("timestamp still inside the window should count")
	}
}

func TestSlidingWindow_IncrementalExpiry(t *testing.T) {
	t.Parallel()

	w, now := testWindow(3, time.Minute)

	w.IsRateLimited("k")
	*now = now.Add(20 * time.Second)
	w.IsRateLimited("k")
	*now = now.Add(20 * time.Second)
	w.IsRateLimited("k")

	if !w.IsRateLimited("k") {
		t.Fatalf("quota should be spent")
	}

	// 21s later only the first timestamp has aged out.
	*now = now.Add(21 * time.Second)
	if got := w.RemainingRequests("k"); got != 1 {
		t.Fatalf("expected 1 remaining, got %d", got)
	}
	if w.IsRateLimited("k") {
		t.Fatalf("one slot should have freed")
	}
	if !w.IsRateLimited("k") {
		t.Fatalf("quota should be spent again")
	}
}

func TestSlidingWindow_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	w, _ := testWindow(1, time.Minute)

	keys := []string{"alice", "bob", "", "ключ", "10.0.0.1"}
	for _, key := range keys {
		if w.IsRateLimited(key) {
			t.Fatalf("first request for %q should pass", key)
		}
	}
	for _, key := range keys {
		if !w.IsRateLimited(key) {
			t.Fatalf("second request for %q should be limited", key)
		}
	}
}

func TestSlidingWindow_RemainingDoesNotRecord(t *testing.T) {
	t.Parallel()

	w, _ := testWindow(3, time.Minute)

	if got := w.RemainingRequests("k"); got != 3 {
		t.Fatalf("expected 3 remaining for unknown key, got %d", got)
	}
	for i := 0; i < 10; i++ {
		w.RemainingRequests("k")
	}
	if got := w.RemainingRequests("k"); got != 3 {
		t.Fatalf("RemainingRequests must not consume quota, got %d", got)
	}

	w.IsRateLimited("k")
	if got := w.RemainingRequests("k"); got != 2 {
		t.Fatalf("expected 2 remaining, got %d", got)
	}
}

func TestSlidingWindow_RemainingNeverNegative(t *testing.T) {
	t.Parallel()

	w, _ := testWindow(2, time.Minute)

	for i := 0; i < 5; i++ {
		w.IsRateLimited("k")
	}
	if got := w.RemainingRequests("k"); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}

func TestSlidingWindow_CleanupDropsEmptyKeys(t *testing.T) {
	t.Parallel()

	w, now := testWindow(5, time.Minute)

	w.IsRateLimited("stale")
	*now = now.Add(30 * time.Second)
	w.IsRateLimited("fresh")
	*now = now.Add(31 * time.Second)

	w.Cleanup()

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.store["stale"]; ok {
		t.Fatalf("fully aged key should be removed")
	}
	if got := len(w.store["fresh"]); got != 1 {
		t.Fatalf("fresh key should keep its timestamp, got %d", got)
	}
}

func TestSlidingWindow_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	w := newSlidingWindow(50, time.Minute)

	var wg sync.WaitGroup
	allowed := make([]int, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if !w.IsRateLimited("shared") {
					allowed[g]++
				}
				w.RemainingRequests("shared")
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, n := range allowed {
		total += n
	}
	if total != 50 {
		t.Fatalf("expected exactly 50 requests through, got %d", total)
	}
	if got := w.RemainingRequests("shared"); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}
