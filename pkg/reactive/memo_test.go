package reactive

import "testing"

func TestMemoLazy(t *testing.T) {
	computes := 0
	count := NewSignal(2)
	doubled := NewMemo(func() int {
		computes++
		return count.Get() * 2
	})

	if computes != 0 {
		t.Errorf("memo should not compute at creation, computed %d times", computes)
	}

	if doubled.Get() != 4 {
		t.Errorf("expected 4, got %d", doubled.Get())
	}
	if computes != 1 {
		t.Errorf("expected 1 computation, got %d", computes)
	}

	// Cached read.
	_ = doubled.Get()
	if computes != 1 {
		t.Errorf("cached read should not recompute, got %d", computes)
	}
}

func TestMemoInvalidation(t *testing.T) {
	count := NewSignal(1)
	doubled := NewMemo(func() int { return count.Get() * 2 })

	if doubled.Get() != 2 {
		t.Fatalf("expected 2, got %d", doubled.Get())
	}

	count.Set(5)
	if doubled.Get() != 10 {
		t.Errorf("expected 10 after dependency change, got %d", doubled.Get())
	}
}

func TestMemoCoalescesMultipleWrites(t *testing.T) {
	computes := 0
	a := NewSignal(1)
	b := NewSignal(2)
	sum := NewMemo(func() int {
		computes++
		return a.Get() + b.Get()
	})

	_ = sum.Get()

	a.Set(10)
	b.Set(20)

	// Two writes, one recompute on the next read.
	if sum.Get() != 30 {
		t.Errorf("expected 30, got %d", sum.Get())
	}
	if computes != 2 {
		t.Errorf("expected 2 computations total, got %d", computes)
	}
}

func TestMemoChains(t *testing.T) {
	count := NewSignal(1)
	doubled := NewMemo(func() int { return count.Get() * 2 })
	quadrupled := NewMemo(func() int { return doubled.Get() * 2 })

	if quadrupled.Get() != 4 {
		t.Fatalf("expected 4, got %d", quadrupled.Get())
	}

	count.Set(3)
	if quadrupled.Get() != 12 {
		t.Errorf("expected 12 through memo chain, got %d", quadrupled.Get())
	}
}

func TestMemoNotifiesSubscribers(t *testing.T) {
	count := NewSignal(1)
	doubled := NewMemo(func() int { return count.Get() * 2 })
	listener := newTestListener()

	WithListener(listener, func() {
		_ = doubled.Get()
	})

	count.Set(2)
	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 notification through memo, got %d", listener.dirtyCount())
	}
}

func TestMemoDropsStaleSources(t *testing.T) {
	useA := NewSignal(true)
	a := NewSignal(1)
	b := NewSignal(2)
	picked := NewMemo(func() int {
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	if picked.Get() != 1 {
		t.Fatalf("expected 1, got %d", picked.Get())
	}

	useA.Set(false)
	if picked.Get() != 2 {
		t.Fatalf("expected 2, got %d", picked.Get())
	}

	// a is no longer a dependency; changing it must not invalidate.
	listener := newTestListener()
	WithListener(listener, func() {
		_ = picked.Get()
	})
	a.Set(100)
	if listener.dirtyCount() != 0 {
		t.Errorf("stale source should have been dropped, got %d notifications", listener.dirtyCount())
	}
}
