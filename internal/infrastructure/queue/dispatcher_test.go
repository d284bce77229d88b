package queue

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

type recordingPayroll struct {
	mu   sync.Mutex
	jobs []ports.PrewarmJob
	done chan struct{}
	want int
}

func newRecordingPayroll(want int) *recordingPayroll {
	return &recordingPayroll{done: make(chan struct{}), want: want}
}

func (r *recordingPayroll) GetPayStub(ctx context.Context, userID string, period domain.Period, now time.Time) (*ports.PayStub, error) {
	return &ports.PayStub{}, nil
}

func (r *recordingPayroll) PrewarmSummary(ctx context.Context, userID string, period domain.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, ports.PrewarmJob{UserID: userID, Period: period})
	if len(r.jobs) == r.want {
		close(r.done)
	}
	return nil
}

func (r *recordingPayroll) snapshot() []ports.PrewarmJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.PrewarmJob, len(r.jobs))
	copy(out, r.jobs)
	return out
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for prewarm jobs")
	}
}

func TestDispatcher_ProcessesEnqueuedJobs(t *testing.T) {
	payroll := newRecordingPayroll(2)
	d := NewDispatcher(2, payroll, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.PrewarmJob{UserID: "user-1", Period: domain.PeriodWeek})
	d.Enqueue(ports.PrewarmJob{UserID: "user-1", Period: domain.PeriodMonth})

	waitDone(t, payroll.done)

	jobs := payroll.snapshot()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	// Same user shards to the same worker, so order is preserved.
	if jobs[0].Period != domain.PeriodWeek || jobs[1].Period != domain.PeriodMonth {
		t.Fatalf("jobs processed out of order: %+v", jobs)
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newRecordingPayroll(0), zerolog.New(io.Discard))

	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("user-42"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingPayroll(0), zerolog.New(io.Discard))
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	payroll := newRecordingPayroll(1)
	d := NewDispatcher(1, payroll, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(ports.PrewarmJob{UserID: "user-1", Period: domain.PeriodWeek})
	waitDone(t, payroll.done)

	cancel()
	time.Sleep(50 * time.Millisecond)

	// Jobs enqueued after cancellation stay in the buffer; the worker is gone.
	d.Enqueue(ports.PrewarmJob{UserID: "user-1", Period: domain.PeriodMonth})
	time.Sleep(50 * time.Millisecond)

	if got := len(payroll.snapshot()); got != 1 {
		t.Fatalf("expected no processing after cancel, got %d jobs", got)
	}
}
