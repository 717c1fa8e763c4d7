package reactive

import "testing"

func TestOwnerHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	grandchild := NewOwner(child)

	if child.Parent() != root {
		t.Errorf("child parent mismatch")
	}
	if grandchild.Parent() != child {
		t.Errorf("grandchild parent mismatch")
	}
}

func TestOwnerDisposeRunsCleanupsInReverse(t *testing.T) {
	o := NewOwner(nil)

	var order []int
	o.OnCleanup(func() { order = append(order, 1) })
	o.OnCleanup(func() { order = append(order, 2) })

	o.Dispose()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("cleanups should run in reverse order, got %v", order)
	}
	if !o.IsDisposed() {
		t.Errorf("owner should report disposed")
	}
}

func TestOwnerDisposeCascades(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	childCleaned := false
	child.OnCleanup(func() { childCleaned = true })

	root.Dispose()

	if !childCleaned {
		t.Errorf("disposing parent should dispose children")
	}
	if !child.IsDisposed() {
		t.Errorf("child should report disposed")
	}
}

func TestOnCleanupAfterDisposeRunsImmediately(t *testing.T) {
	o := NewOwner(nil)
	o.Dispose()

	ran := false
	o.OnCleanup(func() { ran = true })
	if !ran {
		t.Errorf("cleanup registered after disposal should run immediately")
	}
}

func TestEffectScheduledThroughOwner(t *testing.T) {
	o := NewOwner(nil)
	count := NewSignal(0)

	runs := 0
	WithOwner(o, func() {
		NewEffect(func() Cleanup {
			runs++
			_ = count.Get()
			return nil
		})
	})

	if runs != 1 {
		t.Fatalf("effect should run once at creation, ran %d times", runs)
	}

	count.Set(1)
	if runs != 1 {
		t.Errorf("owned effect should wait for Flush, ran %d times", runs)
	}
	if !o.HasPending() {
		t.Errorf("owner should report pending effects")
	}

	o.Flush()
	if runs != 2 {
		t.Errorf("expected effect to re-run on Flush, ran %d times", runs)
	}
}

func TestDisposedOwnerDropsPendingEffects(t *testing.T) {
	o := NewOwner(nil)
	count := NewSignal(0)

	runs := 0
	WithOwner(o, func() {
		NewEffect(func() Cleanup {
			runs++
			_ = count.Get()
			return nil
		})
	})

	count.Set(1) // effect pending
	o.Dispose()
	o.Flush()

	if runs != 1 {
		t.Errorf("pending effect on disposed owner must be dropped, ran %d times", runs)
	}
}

func TestEffectCleanupOnDispose(t *testing.T) {
	o := NewOwner(nil)

	cleaned := false
	WithOwner(o, func() {
		NewEffect(func() Cleanup {
			return func() { cleaned = true }
		})
	})

	o.Dispose()
	if !cleaned {
		t.Errorf("effect cleanup should run on owner disposal")
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	count := NewSignal(0)

	var events []string
	e := NewEffect(func() Cleanup {
		v := count.Get()
		events = append(events, "run")
		_ = v
		return func() { events = append(events, "cleanup") }
	})
	defer e.dispose()

	count.Set(1) // ownerless effect re-runs inline

	want := []string{"run", "cleanup", "run"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, events)
		}
	}
}
