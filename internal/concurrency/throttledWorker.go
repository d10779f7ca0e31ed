package concurrency

import (
	"time"
)

// ThrottledWorker runs one job per light address, paced so the gateway's
// single synchronous command stream is not flooded.
type ThrottledWorker struct {
	pace        time.Duration
	jobCallback func(addr uint64) error
}

func NewThrottledWorker(pace time.Duration, jobCallback func(addr uint64) error) ThrottledWorker {
	return ThrottledWorker{pace: pace, jobCallback: jobCallback}
}

func (w *ThrottledWorker) Run(addrs []uint64) {

	limiter := time.NewTicker(w.pace)
	defer limiter.Stop()

	for _, addr := range addrs {
		<-limiter.C
		w.jobCallback(addr)
	}
}
