package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), want)
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const numTasks = 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != numTasks {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var ran atomic.Int32
	pool.ExecuteAll([]func(){
		func() { ran.Add(1) },
		func() { ran.Add(1) },
	})
	if ran.Load() != 2 {
		t.Errorf("ran = %d, want 2 (inline after close)", ran.Load())
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after Close")
	}
}

func TestWorkerPool_CloseDuringExecuteAll(t *testing.T) {
	for iter := 0; iter < 20; iter++ {
		pool := NewWorkerPool(2)

		var count atomic.Int32
		work := make([]func(), 400)
		for i := range work {
			work[i] = func() {
				time.Sleep(time.Microsecond)
				count.Add(1)
			}
		}

		finished := make(chan struct{})
		go func() {
			pool.ExecuteAll(work)
			close(finished)
		}()

		time.Sleep(200 * time.Microsecond)
		pool.Close()

		select {
		case <-finished:
		case <-time.After(3 * time.Second):
			t.Fatalf("iteration %d: ExecuteAll did not return after Close", iter)
		}
		if got := count.Load(); got != 400 {
			t.Fatalf("iteration %d: ran %d items, want 400", iter, got)
		}
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 16)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if counter.Load() != 8*16 {
		t.Errorf("counter = %d, want %d", counter.Load(), 8*16)
	}
}

// =============================================================================
// Split Tests
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		parts      int
		want       []Band
	}{
		{"even", 0, 8, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder", 10, 17, 3, []Band{{10, 13}, {13, 15}, {15, 17}}},
		{"more parts than rows", 0, 2, 8, []Band{{0, 1}, {1, 2}}},
		{"zero parts", 0, 3, 0, []Band{{0, 3}}},
		{"empty", 5, 5, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.start, tt.end, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("Split = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	work := make([]func(), 64)
	for i := range work {
		work[i] = func() {}
	}

	b.ReportAllocs()
	for b.Loop() {
		pool.ExecuteAll(work)
	}
}
