package services

import (
	"github.com/casaledger/casaledger-api/internal/jobs"
)

// JobService exposes background worker information
type JobService struct {
	worker *jobs.Worker
}

// NewJobService creates a new job service
func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{worker: worker}
}

// Stats returns current worker statistics
func (s *JobService) Stats() jobs.WorkerStats {
	return s.worker.GetStats()
}
