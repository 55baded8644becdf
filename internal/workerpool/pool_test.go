package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Iron-Ham/levdist/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("starts requested workers", func(t *testing.T) {
		p, err := New(3)
		if err != nil {
			t.Fatalf("New(3) error = %v", err)
		}
		defer p.Close()

		if p.Workers() != 3 {
			t.Errorf("Workers() = %d, want 3", p.Workers())
		}
		if got := p.String(); got != "workerpool(3)" {
			t.Errorf("String() = %q, want %q", got, "workerpool(3)")
		}
	})

	t.Run("rejects zero workers", func(t *testing.T) {
		p, err := New(0)
		if err == nil {
			p.Close()
			t.Fatal("New(0) error = nil, want error")
		}
		if !errors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("New(0) error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestPool_RunWritesEverySlot(t *testing.T) {
	p, err := New(4)
	if err != nil {
		t.Fatalf("New(4) error = %v", err)
	}
	defer p.Close()

	const n = 1000
	out := make([]int, n)
	if err := p.Run(n, func(i int) { out[i] = i * i }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestPool_RunZeroTasks(t *testing.T) {
	p, err := New(1)
	if err != nil {
		t.Fatalf("New(1) error = %v", err)
	}
	defer p.Close()

	called := false
	if err := p.Run(0, func(int) { called = true }); err != nil {
		t.Fatalf("Run(0) error = %v", err)
	}
	if called {
		t.Error("Run(0) invoked fn")
	}
}

func TestPool_BoundedParallelism(t *testing.T) {
	const workers = 3
	p, err := New(workers)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer p.Close()

	var active, peak atomic.Int32
	err = p.Run(30, func(int) {
		cur := active.Add(1)
		for {
			prev := peak.Load()
			if cur <= prev || peak.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency = %d, want <= %d", got, workers)
	}
}

func TestPool_ConcurrentRuns(t *testing.T) {
	p, err := New(2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer p.Close()

	var wg sync.WaitGroup
	results := make([][]int, 6)
	for b := range results {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			out := make([]int, 50)
			if err := p.Run(len(out), func(i int) { out[i] = b*100 + i }); err != nil {
				t.Errorf("batch %d: Run() error = %v", b, err)
			}
			results[b] = out
		}(b)
	}
	wg.Wait()

	for b, out := range results {
		for i, v := range out {
			if v != b*100+i {
				t.Fatalf("batch %d slot %d = %d, want %d", b, i, v, b*100+i)
			}
		}
	}
}

func TestPool_RepanicsOnCaller(t *testing.T) {
	p, err := New(2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer p.Close()

	var ran atomic.Int32
	defer func() {
		if r := recover(); r == nil {
			t.Error("Run() did not re-panic")
		}
		if got := ran.Load(); got != 10 {
			t.Errorf("ran %d tasks, want 10", got)
		}
	}()

	_ = p.Run(10, func(i int) {
		ran.Add(1)
		if i == 5 {
			panic("boom")
		}
	})
}

func TestPool_RunAfterClose(t *testing.T) {
	p, err := New(2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p.Close()
	p.Close()

	err = p.Run(1, func(int) {})
	if !errors.Is(err, errors.ErrPoolClosed) {
		t.Errorf("Run() after Close error = %v, want ErrPoolClosed", err)
	}
}
