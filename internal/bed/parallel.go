package bed

import (
	"runtime"
	"sync"

	"github.com/ousamg/gene2bed/internal/feature"
)

// WorkItem holds a parsed feature ready for encoding.
type WorkItem struct {
	Seq      int
	Interval feature.Interval
}

// WorkResult holds the encoded record for a single feature.
type WorkResult struct {
	Seq int
	Rec Record
}

// ParallelEncode encodes work items using a pool of workers. Each worker
// owns a private NameCache, since the cache is not safe for shared mutation.
// Results are sent to the returned channel in arrival order (not sequence
// order). Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func ParallelEncode(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			cache := make(NameCache)
			for item := range items {
				results <- WorkResult{
					Seq: item.Seq,
					Rec: Encode(item.Interval, cache),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
