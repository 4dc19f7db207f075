package state

import (
	"fmt"
	"sync"
	"time"
)

// DefaultLimit bounds the number of jobs a Store remembers.
const DefaultLimit = 50

// Job is one print submission and its outcome.
type Job struct {
	ID       string
	Printer  string
	Labels   int // request size, warm-up included
	Started  time.Time
	Finished time.Time
	Err      error
}

// OK reports whether the print service accepted the job.
func (j Job) OK() bool { return j.Err == nil }

// Duration is the time spent waiting on the print service.
func (j Job) Duration() time.Duration {
	if j.Finished.Before(j.Started) {
		return 0
	}
	return j.Finished.Sub(j.Started)
}

// Snapshot is a point-in-time copy of the print history.
type Snapshot struct {
	Jobs                []Job // oldest first
	Printed             int   // labels accepted across all jobs
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Failing reports whether the last two or more jobs were rejected.
func (s Snapshot) Failing() bool {
	return s.ConsecutiveFailures >= 2
}

// Last returns the most recent job.
func (s Snapshot) Last() (Job, bool) {
	if len(s.Jobs) == 0 {
		return Job{}, false
	}
	return s.Jobs[len(s.Jobs)-1], true
}

// Store records print jobs. The zero value is ready to use and keeps
// DefaultLimit jobs.
type Store struct {
	// Limit overrides DefaultLimit when positive. Set it before first use.
	Limit int

	mu       sync.RWMutex
	snapshot Snapshot
}

// Record appends a finished job. A failed job sets LastError; a successful
// one clears it and resets the failure count.
func (s *Store) Record(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.snapshot.Jobs = append(s.snapshot.Jobs, job)
	if over := len(s.snapshot.Jobs) - limit; over > 0 {
		s.snapshot.Jobs = append([]Job(nil), s.snapshot.Jobs[over:]...)
	}
	s.snapshot.LastUpdated = time.Now()

	if job.Err != nil {
		s.snapshot.LastError = job.Err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Printed += job.Labels
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current history.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Jobs = cloneJobs(s.snapshot.Jobs)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneJobs(jobs []Job) []Job {
	if len(jobs) == 0 {
		return nil
	}
	dup := make([]Job, len(jobs))
	copy(dup, jobs)
	return dup
}
