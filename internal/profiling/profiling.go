package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU tracker for the geometry pipeline stages.

type stageStat struct {
	total time.Duration
	calls int
}

var (
	mu     sync.Mutex
	stages = make(map[string]stageStat)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("engine.Dispatch")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := stages[name]
		s.total += d
		s.calls++
		stages[name] = s
		mu.Unlock()
	}
}

// BeginFrame clears the current frame's stage totals.
func BeginFrame() {
	mu.Lock()
	for k := range stages {
		delete(stages, k)
	}
	mu.Unlock()
}

// TopN formats the n most expensive stages of the current frame, e.g.
// "engine.Dispatch:1.8ms(x1), engine.Refresh:0.1ms(x1)".
func TopN(n int) string {
	mu.Lock()
	type entry struct {
		name string
		stat stageStat
	}
	list := make([]entry, 0, len(stages))
	for k, v := range stages {
		list = append(list, entry{name: k, stat: v})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].stat.total > list[j].stat.total })
	if n > len(list) {
		n = len(list)
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		ms := float64(list[i].stat.total.Microseconds()) / 1000.0
		b.WriteString(list[i].name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(ms, 'f', 1, 64))
		b.WriteString("ms(x")
		b.WriteString(strconv.Itoa(list[i].stat.calls))
		b.WriteByte(')')
	}
	return b.String()
}
