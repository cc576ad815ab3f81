package reactive

import "testing"

// TestBatch_BatchingScenario checks that batching coalesces two writes into
// one effect run.
func TestBatch_BatchingScenario(t *testing.T) {
	rt := NewRuntime()
	a := NewSignal(rt, 1)
	b := NewSignal(rt, 2)
	var log []int

	if _, err := NewEffect(rt, func(prev any) (any, error) {
		log = append(log, a.Get()+b.Get())
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	assertIntLog(t, log, []int{3})

	if err := Batch(rt, func() {
		_ = a.Set(10)
		_ = b.Set(20)
	}); err != nil {
		t.Fatalf("Batch: %v", err)
	}
	assertIntLog(t, log, []int{3, 30})
}

// TestBatch_DynamicDepsScenario checks that dynamic dependencies track only
// what was actually read on the most recent run.
func TestBatch_DynamicDepsScenario(t *testing.T) {
	rt := NewRuntime()
	c := NewSignal(rt, true)
	x := NewSignal(rt, 1)
	y := NewSignal(rt, 2)
	var log []int

	if _, err := NewEffect(rt, func(prev any) (any, error) {
		if c.Get() {
			log = append(log, x.Get())
		} else {
			log = append(log, y.Get())
		}
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	assertIntLog(t, log, []int{1})

	if err := y.Set(99); err != nil {
		t.Fatalf("y.Set(99): %v", err)
	}
	assertIntLog(t, log, []int{1}) // y isn't a dep yet

	if err := c.Set(false); err != nil {
		t.Fatalf("c.Set(false): %v", err)
	}
	assertIntLog(t, log, []int{1, 99})

	if err := x.Set(5); err != nil {
		t.Fatalf("x.Set(5): %v", err)
	}
	assertIntLog(t, log, []int{1, 99}) // x no longer a dep

	if err := y.Set(7); err != nil {
		t.Fatalf("y.Set(7): %v", err)
	}
	assertIntLog(t, log, []int{1, 99, 7})
}

// TestBatch_IdempotentNesting checks that Batch(fn) and a Batch nested
// inside another Batch produce the same externally visible effect runs.
func TestBatch_IdempotentNesting(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 0)
	runs := 0
	if _, err := NewEffect(rt, func(prev any) (any, error) {
		s.Get()
		runs++
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	runs = 0 // ignore the initial eager run

	if err := Batch(rt, func() {
		_ = s.Set(1)
		_ = s.Set(2)
	}); err != nil {
		t.Fatalf("Batch: %v", err)
	}
	flatRuns := runs

	rt2 := NewRuntime()
	s2 := NewSignal(rt2, 0)
	runs2 := 0
	if _, err := NewEffect(rt2, func(prev any) (any, error) {
		s2.Get()
		runs2++
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	runs2 = 0

	if err := Batch(rt2, func() {
		_ = Batch(rt2, func() {
			_ = s2.Set(1)
			_ = s2.Set(2)
		})
	}); err != nil {
		t.Fatalf("nested Batch: %v", err)
	}

	if runs != flatRuns || flatRuns != runs2 {
		t.Fatalf("flat runs = %d, nested runs = %d, want equal", flatRuns, runs2)
	}
	if flatRuns != 1 {
		t.Fatalf("expected exactly one coalesced run, got %d", flatRuns)
	}
}

// TestUntrack_Correctness checks that a signal read inside Untrack never
// subscribes the enclosing effect.
func TestUntrack_Correctness(t *testing.T) {
	rt := NewRuntime()
	s := NewSignal(rt, 1)
	runs := 0
	if _, err := NewEffect(rt, func(prev any) (any, error) {
		runs++
		Untrack(rt, func() any { return s.Get() })
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	if err := s.Set(2); err != nil {
		t.Fatalf("Set(2): %v", err)
	}
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (untracked read must not create a subscription)", runs)
	}
}

// TestBatch_IterationGuardBoundsFeedbackLoop checks the batch iteration
// cycle guard: two effects that each write the signal the other reads form
// a genuine ping-pong feedback loop (the RUNNING self-reference guard alone
// can't stop this, since it's a different node writing each time), so the
// configured threshold must bound it instead of spinning forever.
func TestBatch_IterationGuardBoundsFeedbackLoop(t *testing.T) {
	rt := NewRuntime(WithMaxBatchIterations(5))
	a := NewSignal(rt, 0)
	b := NewSignal(rt, 0)

	if _, err := NewEffect(rt, func(prev any) (any, error) {
		v := a.Get()
		_ = b.Set(v + 1)
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect (a->b): %v", err)
	}
	if _, err := NewEffect(rt, func(prev any) (any, error) {
		v := b.Get()
		_ = a.Set(v + 1)
		return nil, nil
	}); err != nil {
		t.Fatalf("NewEffect (b->a): %v", err)
	}

	if err := a.Set(1); err != nil {
		t.Fatalf("Set(1): %v", err)
	}

	if rt.Stats().LastDrainWaves > rt.maxBatchIterations {
		t.Fatalf("drain ran %d waves, guard threshold is %d", rt.Stats().LastDrainWaves, rt.maxBatchIterations)
	}
}
