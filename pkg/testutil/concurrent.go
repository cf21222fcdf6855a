package testutil

import (
	"sync"

	"github.com/pointroulette/backend/pkg/errorx"
	"golang.org/x/sync/errgroup"
)

// Outcome counts the results of concurrent calls by error code. Successful
// calls are counted under the empty code.
type Outcome struct {
	mu     sync.Mutex
	counts map[errorx.Code]int
}

func (o *Outcome) add(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.counts == nil {
		o.counts = make(map[errorx.Code]int)
	}

	if err == nil {
		o.counts[""]++
	} else {
		o.counts[errorx.CodeOf(err)]++
	}
}

func (o *Outcome) Success() int {
	return o.Count("")
}

func (o *Outcome) Count(code errorx.Code) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.counts[code]
}

func (o *Outcome) Total() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	total := 0
	for _, c := range o.counts {
		total += c
	}

	return total
}

// RunConcurrently starts n goroutines calling fn(i) together and collects
// their outcomes. Business errors are counted, they do not stop the others.
func RunConcurrently(n int, fn func(i int) error) *Outcome {
	outcome := &Outcome{}
	start := make(chan struct{})

	eg := errgroup.Group{}
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			<-start
			outcome.add(fn(i))
			return nil
		})
	}

	close(start)
	_ = eg.Wait()
	return outcome
}
