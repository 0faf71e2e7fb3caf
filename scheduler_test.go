package mcpng

import (
	"bytes"
	"sync"
	"testing"
)

// errorSinkFunc adapts a function to the ErrorSink interface.
type errorSinkFunc func(string)

func (f errorSinkFunc) Error(msg string) { f(msg) }

// TestSchedulerDrainsQueueInBatchMode submits several jobs, then stops and
// waits, confirming every submitted job actually runs exactly once even
// though none of them decode to a valid schematic.
func TestSchedulerDrainsQueueInBatchMode(t *testing.T) {
	sched := NewScheduler(2, false)

	var mu sync.Mutex
	ran := make(map[int]bool)

	const n = 20
	for i := 0; i < n; i++ {
		i := i
		job := &Job{
			Input:  bytes.NewReader([]byte("garbage")), // fails to decode, but still Run()s
			Output: &bytes.Buffer{},
			Errors: errorSinkFunc(func(string) {
				mu.Lock()
				ran[i] = true
				mu.Unlock()
			}),
		}
		sched.Submit(job)
	}

	sched.Stop()
	sched.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(ran) != n {
		t.Fatalf("%d of %d jobs ran", len(ran), n)
	}
}

// TestSchedulerPopIsLIFO exercises the queue directly on a hand-built
// Scheduler with no worker goroutines, so ordering doesn't depend on
// goroutine scheduling: it appends three jobs, checks pop() returns them
// in reverse order, then checks pop() reports ok=false once stopped and
// drained.
func TestSchedulerPopIsLIFO(t *testing.T) {
	sched := &Scheduler{net: false, running: true}
	sched.cond = sync.NewCond(&sched.mu)

	order := []int{1, 2, 3}
	for _, v := range order {
		sched.queue = append(sched.queue, &Job{NumCCWRotations: v})
	}

	var popped []int
	for i := 0; i < len(order); i++ {
		job, ok := sched.pop()
		if !ok {
			t.Fatalf("pop() returned ok=false with %d jobs still queued", len(order)-i)
		}
		popped = append(popped, job.NumCCWRotations)
	}

	want := []int{3, 2, 1}
	for i := range want {
		if popped[i] != want[i] {
			t.Fatalf("pop order = %v, want %v (LIFO)", popped, want)
		}
	}

	sched.running = false
	if _, ok := sched.pop(); ok {
		t.Fatal("pop() should report ok=false once stopped and drained")
	}
}

func TestSchedulerPendingReflectsQueueDepth(t *testing.T) {
	sched := &Scheduler{net: false}
	sched.cond = sync.NewCond(&sched.mu)
	for i := 0; i < 3; i++ {
		sched.queue = append(sched.queue, &Job{})
	}
	if got := sched.Pending(); got != 3 {
		t.Fatalf("Pending() = %d, want 3", got)
	}
}
