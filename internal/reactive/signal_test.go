package reactive

import "testing"

func TestSignal_BasicOperations(t *testing.T) {
	t.Run("create_and_get", func(t *testing.T) {
		rt := NewRuntime()
		sig := NewSignal(rt, 42)

		if value := sig.Get(); value != 42 {
			t.Errorf("Expected 42, got %v", value)
		}
		if value := sig.Peek(); value != 42 {
			t.Errorf("Peek: Expected 42, got %v", value)
		}
	})

	t.Run("set_and_get", func(t *testing.T) {
		rt := NewRuntime()
		sig := NewSignal(rt, "hello")
		if err := sig.Set("world"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if value := sig.Get(); value != "world" {
			t.Errorf("Expected 'world', got %v", value)
		}
	})

	t.Run("update_function", func(t *testing.T) {
		rt := NewRuntime()
		sig := NewSignal(rt, 10)
		if err := sig.Update(func(v int) int { return v * 2 }); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if value := sig.Get(); value != 20 {
			t.Errorf("Expected 20, got %v", value)
		}
	})

	t.Run("set_equal_value_is_noop", func(t *testing.T) {
		rt := NewRuntime()
		sig := NewSignal(rt, 5)
		wBefore := sig.writeEpoch()
		if err := sig.Set(5); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if sig.writeEpoch() != wBefore {
			t.Errorf("write epoch advanced on a no-op Set")
		}
	})
}

// TestSignal_BasicReactivityScenario checks that an effect re-runs once per
// value-changing write and not at all for a write that sets an equal value.
func TestSignal_BasicReactivityScenario(t *testing.T) {
	rt := NewRuntime()
	var log []int
	s := NewSignal(rt, 1)

	if _, err := NewEffect(rt, func(prev any) (any, error) {
		log = append(log, s.Get())
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	assertIntLog(t, log, []int{1})

	if err := s.Set(2); err != nil {
		t.Fatalf("Set(2): %v", err)
	}
	assertIntLog(t, log, []int{1, 2})

	if err := s.Set(2); err != nil {
		t.Fatalf("Set(2) again: %v", err)
	}
	assertIntLog(t, log, []int{1, 2})
}

func assertIntLog(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("log = %v, want %v", got, want)
		}
	}
}
