package reactive

import "testing"

func TestBatchCoalescesNotifications(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(2)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 coalesced notification, got %d", listener.dirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	a := NewSignal(1)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
	})

	Batch(func() {
		a.Set(2)
		Batch(func() {
			a.Set(3)
		})
		// Inner batch completion must not deliver early.
		if listener.dirtyCount() != 0 {
			t.Errorf("inner batch should not deliver, got %d", listener.dirtyCount())
		}
	})

	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.dirtyCount())
	}
}

func TestBatchEmpty(t *testing.T) {
	// A batch with no writes completes without delivering anything.
	Batch(func() {})
}
