// Package workers provides a fixed-size goroutine pool that fans a batch of
// independent jobs out and gathers the results in input order.
package workers

import (
	"runtime"
	"sync"
)

// Pool runs batches across a fixed number of worker goroutines
type Pool struct {
	numWorkers int
}

// NewPool creates a pool with the given number of workers.
// Non-positive values default to the number of CPUs.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{numWorkers: numWorkers}
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.numWorkers
}

type jobItem[T any] struct {
	index int
	item  T
}

type resultItem[R any] struct {
	index  int
	result R
}

// Map applies fn to every item in parallel. The result slice has the same
// order as items regardless of which worker finished first.
func Map[T, R any](p *Pool, items []T, fn func(index int, item T) R) []R {
	n := len(items)
	if n == 0 {
		return []R{}
	}

	jobs := make(chan jobItem[T], n)
	results := make(chan resultItem[R], n)

	numActualWorkers := p.numWorkers
	if n < numActualWorkers {
		numActualWorkers = n // Don't spawn more workers than jobs
	}

	var wg sync.WaitGroup
	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- resultItem[R]{index: job.index, result: fn(job.index, job.item)}
			}
		}()
	}

	for idx, item := range items {
		jobs <- jobItem[T]{index: idx, item: item}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, n)
	for r := range results {
		out[r.index] = r.result
	}
	return out
}
