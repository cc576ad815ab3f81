// Command demo walks through the reactive engine's six headline scenarios
// as a terminal transcript: basic reactivity, batching, dynamic
// dependencies, lazy computed values, computed sharing under an effect, and
// cleanup ordering. It is a reading aid, not a test; see the _test.go files
// under internal/reactive for the assertions these scenarios imply.
package main

import (
	"flag"
	"fmt"

	"github.com/fluxgraph/reactor/internal/logger"
	"github.com/fluxgraph/reactor/internal/reactive"
)

func main() {
	tags := flag.String("log", "", `diagnostic categories to enable, comma-separated (or "all")`)
	flag.Parse()

	rt := reactive.NewRuntime(reactive.WithLogger(newLogger(*tags)))

	basicReactivity(rt)
	batching(rt)
	dynamicDeps(rt)
	lazyComputed(rt)
	computedSharingUnderEffect(rt)
	cleanupOrdering(rt)
}

func newLogger(tags string) *logger.Logger {
	if tags == "" {
		return logger.Silent()
	}
	l := logger.New(logger.LevelTrace)
	if tags != "all" {
		l.EnableGroup(logger.ParseTags(tags))
	}
	return l
}

func basicReactivity(rt *reactive.Runtime) {
	fmt.Println("=== 1. Basic reactivity ===")
	var log []int
	s := reactive.NewSignal(rt, 1)
	if _, err := reactive.NewEffect(rt, func(prev any) (any, error) {
		log = append(log, s.Get())
		return nil, nil
	}); err != nil {
		fmt.Println("effect failed:", err)
	}
	fmt.Println("after create:", log) // [1]

	_ = s.Set(2)
	fmt.Println("after set(2):  ", log) // [1 2]

	_ = s.Set(2)
	fmt.Println("after set(2) again (no-op):", log) // [1 2]
}

func batching(rt *reactive.Runtime) {
	fmt.Println("\n=== 2. Batching ===")
	var log []int
	a := reactive.NewSignal(rt, 1)
	b := reactive.NewSignal(rt, 2)
	_, _ = reactive.NewEffect(rt, func(prev any) (any, error) {
		log = append(log, a.Get()+b.Get())
		return nil, nil
	})
	fmt.Println("after create:", log) // [3]

	_ = reactive.Batch(rt, func() {
		_ = a.Set(10)
		_ = b.Set(20)
	})
	fmt.Println("after batched set(a,b):", log) // [3 30] -- one additional run
}

func dynamicDeps(rt *reactive.Runtime) {
	fmt.Println("\n=== 3. Dynamic dependencies ===")
	var log []int
	c := reactive.NewSignal(rt, true)
	x := reactive.NewSignal(rt, 1)
	y := reactive.NewSignal(rt, 2)
	_, _ = reactive.NewEffect(rt, func(prev any) (any, error) {
		if c.Get() {
			log = append(log, x.Get())
		} else {
			log = append(log, y.Get())
		}
		return nil, nil
	})
	fmt.Println("after create:  ", log) // [1]

	_ = y.Set(99)
	fmt.Println("y.set(99):     ", log) // [1] -- y not yet a dep

	_ = c.Set(false)
	fmt.Println("c.set(false):  ", log) // [1 99]

	_ = x.Set(5)
	fmt.Println("x.set(5):      ", log) // [1 99] -- x no longer a dep

	_ = y.Set(7)
	fmt.Println("y.set(7):      ", log) // [1 99 7]
}

func lazyComputed(rt *reactive.Runtime) {
	fmt.Println("\n=== 4. Lazy computed ===")
	s := reactive.NewSignal(rt, 1)
	k := 0
	d := reactive.NewComputed(rt, func(prev int) (int, error) {
		k++
		return s.Get() * 2, nil
	})
	fmt.Println("before any get, k =", k) // 0

	v, _ := d.Get()
	fmt.Println("d.get() =", v, " k =", k) // 2, 1

	v, _ = d.Get()
	fmt.Println("d.get() =", v, " k =", k) // 2, 1 -- cached, no dependants yet

	_ = s.Set(3)
	fmt.Println("after s.set(3), k =", k) // 1 -- no subscribers, nothing ran

	v, _ = d.Get()
	fmt.Println("d.get() =", v, " k =", k) // 6, 2
}

func computedSharingUnderEffect(rt *reactive.Runtime) {
	fmt.Println("\n=== 5. Computed sharing under an effect ===")
	s := reactive.NewSignal(rt, 1)
	k := 0
	d := reactive.NewComputed(rt, func(prev int) (int, error) {
		k++
		return s.Get() * 2, nil
	})
	var log []int
	_, _ = reactive.NewEffect(rt, func(prev any) (any, error) {
		v, _ := d.Get()
		log = append(log, v)
		return nil, nil
	})
	fmt.Println("after create:", log, " k =", k) // [2], 1

	_ = s.Set(4)
	fmt.Println("after s.set(4):", log, " k =", k) // [2 8], 2
}

func cleanupOrdering(rt *reactive.Runtime) {
	fmt.Println("\n=== 6. Cleanup ordering ===")
	var log []string
	s := reactive.NewSignal(rt, 1)
	_, _ = reactive.NewEffect(rt, func(prev any) (any, error) {
		_ = reactive.Cleanup(rt, func() {
			log = append(log, "x")
		})
		log = append(log, fmt.Sprint(s.Get()))
		return nil, nil
	})
	fmt.Println("after create:", log) // [1]

	_ = s.Set(2)
	fmt.Println("after s.set(2):", log) // [1 x 2]
}
