package parallel

import (
	"runtime"
	"sync"
)

// For splits [0, n) into one balanced contiguous range per worker and runs
// fn on each range from its own goroutine. It returns only after every
// range has completed, so callers can rely on it as a barrier between
// dependent passes.
func For(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		lo := w * n / workers
		hi := (w + 1) * n / workers
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
