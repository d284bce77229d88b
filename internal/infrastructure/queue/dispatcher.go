package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nannytime/nannytime-api/internal/api/metrics"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes summary-prewarm jobs to a fixed set of workers using
// consistent hashing on the user ID, so jobs for the same user are processed
// in order and never concurrently.
type Dispatcher struct {
	workers []chan ports.PrewarmJob
	payroll ports.PayrollService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, payroll ports.PayrollService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PrewarmJob, numWorkers),
		payroll: payroll,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PrewarmJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its user. When that
// worker's buffer is full the job is dropped: prewarming is an optimisation,
// and the pay-stub path generates on demand anyway.
func (d *Dispatcher) Enqueue(job ports.PrewarmJob) {
	idx := d.shardIndex(job.UserID)
	select {
	case d.workers[idx] <- job:
		metrics.PrewarmQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("user_id", job.UserID).Msg("prewarm queue full, job dropped")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PrewarmJob) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.PrewarmQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

			started := time.Now()
			result := "ok"
			if err := d.payroll.PrewarmSummary(ctx, job.UserID, job.Period); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("user_id", job.UserID).
					Str("period", string(job.Period)).
					Int("worker_id", id).
					Msg("summary prewarm failed")
			}
			metrics.PrewarmDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())
		}
	}
}
