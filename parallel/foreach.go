// Package parallel contains the bounded worker pool used for evaluation.
package parallel

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Threads returns the default worker count: the logical cores reported by
// the CPU, at least one.
func Threads() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}

// ForEach calls body for every i in [0, length) on at most limit goroutines
// and returns once all calls finished. A limit of zero or less uses Threads.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = Threads()
	}
	if limit > length {
		limit = length
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)
	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			body(i)
		}(i)
	}
	wg.Wait()
}
