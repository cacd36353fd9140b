package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overduePickupJob  *OverduePickupJob
	slowSubscriberJob *SlowSubscriberEvictionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(overduePickupJob *OverduePickupJob, slowSubscriberJob *SlowSubscriberEvictionJob) *JobManager {
	return &JobManager{
		overduePickupJob:  overduePickupJob,
		slowSubscriberJob: slowSubscriberJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overduePickupJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue pickup job: %w", err)
	}

	if err := jm.slowSubscriberJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.overduePickupJob.Stop()
		return fmt.Errorf("failed to start slow subscriber eviction job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.slowSubscriberJob.Stop()
	jm.overduePickupJob.Stop()
}
