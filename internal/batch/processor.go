// Package batch runs many independent topoplot renders in parallel.
// Runs share no mutable state, so one worker per output file is all the
// coordination needed.
package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"topoplot-renderer/internal/pipeline"
)

// Job names one pipeline run. Pairing the position file with its image
// list happens here, at construction, which is where a strict caller can
// check the two lists line up before rendering starts.
type Job struct {
	Name   string
	Config pipeline.Config
}

// Result holds the outcome of one job.
type Result struct {
	Name    string
	Output  string
	Success bool
	Error   string
}

// Run renders all jobs using a worker pool and returns one Result per
// job, in job order.
func Run(jobs []Job, workers int) []Result {
	total := len(jobs)
	results := make([]Result, total)
	if workers < 1 {
		workers = 1
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f plots/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = runJob(jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func runJob(job Job) Result {
	out, err := pipeline.Run(job.Config)
	if err != nil {
		return Result{Name: job.Name, Error: err.Error()}
	}
	return Result{Name: job.Name, Output: out, Success: true}
}
