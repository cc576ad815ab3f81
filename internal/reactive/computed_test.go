package reactive

import (
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

// TestComputed_LazyScenario checks that a Computed with no subscriber never
// recomputes on a write; only a later Get forces it to catch up.
func TestComputed_LazyScenario(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 1)
	k := 0
	d := NewComputed(rt, func(prev int) (int, error) {
		k++
		return s.Get() * 2, nil
	})

	if k != 0 {
		t.Fatalf("k = %d before any Get, want 0", k)
	}

	v, err := d.Get()
	if err != nil || v != 2 || k != 1 {
		t.Fatalf("first Get = (%d, %v), k = %d; want (2, nil), k=1", v, err, k)
	}

	v, err = d.Get()
	if err != nil || v != 2 || k != 1 {
		t.Fatalf("second Get = (%d, %v), k = %d; want (2, nil), k=1 (cached)", v, err, k)
	}

	if err := s.Set(3); err != nil {
		t.Fatalf("Set(3): %v", err)
	}
	if k != 1 {
		t.Fatalf("k = %d after Set with no subscriber, want unchanged 1", k)
	}

	v, err = d.Get()
	if err != nil || v != 6 || k != 2 {
		t.Fatalf("Get after Set = (%d, %v), k = %d; want (6, nil), k=2", v, err, k)
	}
}

// TestComputed_SharingUnderEffectScenario checks that a Computed read by a
// subscribed Effect recomputes exactly once per upstream write.
func TestComputed_SharingUnderEffectScenario(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 1)
	k := 0
	d := NewComputed(rt, func(prev int) (int, error) {
		k++
		return s.Get() * 2, nil
	})

	var log []int
	if _, err := NewEffect(rt, func(prev any) (any, error) {
		v, _ := d.Get()
		log = append(log, v)
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}

	if len(log) != 1 || log[0] != 2 || k != 1 {
		t.Fatalf("after create: log=%v k=%d, want [2] k=1", log, k)
	}

	if err := s.Set(4); err != nil {
		t.Fatalf("Set(4): %v", err)
	}
	if len(log) != 2 || log[1] != 8 || k != 2 {
		t.Fatalf("after Set(4): log=%v k=%d, want [2 8] k=2", log, k)
	}
}

// TestComputed_PurityInvariant checks that repeated reads between writes
// don't re-invoke the compute fn.
func TestComputed_PurityInvariant(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 10)
	calls := 0
	d := NewComputed(rt, func(prev int) (int, error) {
		calls++
		return s.Get() + 1, nil
	})

	for i := 0; i < 5; i++ {
		v, err := d.Get()
		if err != nil || v != 11 {
			t.Fatalf("Get #%d = (%d, %v), want (11, nil)", i, v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 across repeated reads", calls)
	}
}

func TestComputed_ErrorIsStoredAndCleared(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, false)
	d := NewComputed(rt, func(prev int) (int, error) {
		if s.Get() {
			return 0, errBoom
		}
		return 42, nil
	})

	v, err := d.Get()
	if err != nil || v != 42 {
		t.Fatalf("initial Get = (%d, %v), want (42, nil)", v, err)
	}

	if err := s.Set(true); err != nil {
		t.Fatalf("Set(true): %v", err)
	}
	if _, err := d.Get(); err == nil {
		t.Fatal("expected Get to return the stored compute error")
	}

	if err := s.Set(false); err != nil {
		t.Fatalf("Set(false): %v", err)
	}
	v, err = d.Get()
	if err != nil || v != 42 {
		t.Fatalf("Get after recovery = (%d, %v), want (42, nil)", v, err)
	}
}
