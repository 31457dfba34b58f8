// Package printqueue accepts receipt print requests and executes them one
// at a time, in submission order, through a single background drain loop.
package printqueue

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tillpoint/internal/logger"
)

// Status of a print job. queued → printing → {completed | failed}, plus
// queued → cancelled. Terminal statuses never change again.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusPrinting  Status = "printing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// historyCap bounds the terminal-job history; the oldest entry is evicted
// first once the cap is reached.
const historyCap = 100

// Job is one print request. Content is the already-rendered payload
// (receipt HTML); the queue never interprets it.
type Job struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	PrinterName  string    `json:"printer_name"`
	JobType      string    `json:"job_type"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Snapshot is the read-only view returned by Queue.Status.
type Snapshot struct {
	ID           string    `json:"id"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	PrinterName  string    `json:"printer_name"`
	JobType      string    `json:"job_type"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Stats counts jobs per status across the queue, the in-flight slot and
// the retained history.
type Stats struct {
	Queued    int `json:"queued"`
	Printing  int `json:"printing"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}

// Executor performs the actual print. It is expected to return an error on
// hardware or transport faults; the queue downgrades that to a failed job.
type Executor interface {
	Print(job *Job) error
}

// Queue serializes print execution. Queue/history/flag access is guarded by
// mu; the Executor runs outside the lock so Submit/Status/Cancel are never
// blocked for the duration of a print.
type Queue struct {
	mu       sync.Mutex
	pending  []*Job
	current  *Job
	history  []*Job
	draining bool

	exec Executor
	log  *logger.Logger
	now  func() time.Time
}

// New builds a queue around the given executor.
func New(exec Executor, log *logger.Logger) *Queue {
	return &Queue{
		exec: exec,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Submit enqueues a job and returns its id immediately. If no drain loop is
// active one is started; the check-and-set happens under the queue lock so
// at most one loop ever runs. The queue itself is unbounded.
func (q *Queue) Submit(content, printerName, jobType string) string {
	now := q.now()
	job := &Job{
		ID:          uuid.NewString(),
		Content:     content,
		PrinterName: printerName,
		JobType:     jobType,
		Status:      StatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	q.mu.Lock()
	q.pending = append(q.pending, job)
	startDrain := !q.draining
	if startDrain {
		q.draining = true
	}
	q.mu.Unlock()

	if startDrain {
		go q.drain()
	}
	return job.ID
}

// drain pops and executes jobs until the queue is empty, then clears the
// active flag and exits. One failing job never halts the loop.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		job := q.pending[0]
		q.pending = q.pending[1:]
		job.Status = StatusPrinting
		job.UpdatedAt = q.now()
		q.current = job
		q.mu.Unlock()

		err := q.exec.Print(job)

		q.mu.Lock()
		if err != nil {
			job.Status = StatusFailed
			job.ErrorMessage = err.Error()
			if q.log != nil {
				q.log.Errorw("print_job_failed", "job_id", job.ID, "printer", job.PrinterName, "err", err)
			}
		} else {
			job.Status = StatusCompleted
		}
		job.UpdatedAt = q.now()
		q.current = nil
		q.pushHistory(job)
		q.mu.Unlock()
	}
}

// pushHistory appends a terminal job, evicting from the head past the cap.
// Caller holds q.mu.
func (q *Queue) pushHistory(job *Job) {
	q.history = append(q.history, job)
	if len(q.history) > historyCap {
		q.history = q.history[len(q.history)-historyCap:]
	}
}

// Status returns a snapshot of the job, scanning the queue, the in-flight
// slot and then the history. The second result is false for unknown ids.
func (q *Queue) Status(jobID string) (Snapshot, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, j := range q.pending {
		if j.ID == jobID {
			return snapshot(j), true
		}
	}
	if q.current != nil && q.current.ID == jobID {
		return snapshot(q.current), true
	}
	for _, j := range q.history {
		if j.ID == jobID {
			return snapshot(j), true
		}
	}
	return Snapshot{}, false
}

// Cancel removes a still-queued job, marking it cancelled and moving it to
// history. It returns false for jobs already printing, already terminal or
// unknown; cancellation of an in-flight print is not supported.
func (q *Queue) Cancel(jobID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, j := range q.pending {
		if j.ID != jobID {
			continue
		}
		q.pending = append(q.pending[:i], q.pending[i+1:]...)
		j.Status = StatusCancelled
		j.UpdatedAt = q.now()
		q.pushHistory(j)
		return true
	}
	return false
}

// Stats counts jobs by status for monitoring feeds.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := Stats{Queued: len(q.pending)}
	if q.current != nil {
		s.Printing = 1
	}
	for _, j := range q.history {
		switch j.Status {
		case StatusCompleted:
			s.Completed++
		case StatusFailed:
			s.Failed++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// HistoryLen reports how many terminal jobs are currently retained.
func (q *Queue) HistoryLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.history)
}

// Idle reports whether no drain loop is running and nothing is pending.
func (q *Queue) Idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.draining && len(q.pending) == 0
}

func snapshot(j *Job) Snapshot {
	return Snapshot{
		ID:           j.ID,
		Status:       j.Status,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		PrinterName:  j.PrinterName,
		JobType:      j.JobType,
		ErrorMessage: j.ErrorMessage,
	}
}
