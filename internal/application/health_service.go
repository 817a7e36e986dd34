package application

import (
	"sync"
	"time"
)

// HealthStatus describes the outcome of the most recent aggregation run.
type HealthStatus struct {
	Status    string // "starting" before the first run, then "ok" or "error"
	LastRun   time.Time
	Reachable int
	Error     string
}

// HasRun reports whether any run has finished.
func (h HealthStatus) HasRun() bool {
	return !h.LastRun.IsZero()
}

// HealthService keeps the result of the latest run for status endpoints.
// It is safe for concurrent use.
type HealthService struct {
	mu     sync.RWMutex
	status HealthStatus
	ok     bool
}

// NewHealthService creates a HealthService in the starting state.
func NewHealthService() *HealthService {
	return &HealthService{status: HealthStatus{Status: "starting"}}
}

// Record stores the outcome of a run.
func (s *HealthService) Record(report Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	finished := report.StartedAt.Add(report.Duration)
	if report.StartedAt.IsZero() {
		finished = time.Now()
	}

	s.status = HealthStatus{
		Status:    "ok",
		LastRun:   finished,
		Reachable: report.Reachable,
	}
	if err != nil {
		s.status.Status = "error"
		s.status.Error = err.Error()
	} else {
		s.ok = true
	}
}

// Check returns the current status.
func (s *HealthService) Check() HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// PlaylistReady reports whether a playlist has been written successfully.
func (s *HealthService) PlaylistReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ok
}
