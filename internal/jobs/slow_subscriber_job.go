package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SlowSubscriberEvictor is implemented by the notification hub.
type SlowSubscriberEvictor interface {
	EvictSlow(threshold int64) int
}

// SlowSubscriberEvictionJob disconnects live subscribers that keep dropping messages,
// so a stalled client does not hold its subscriptions forever.
type SlowSubscriberEvictionJob struct {
	evictor   SlowSubscriberEvictor
	schedule  string
	threshold int64
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewSlowSubscriberEvictionJob(
	evictor SlowSubscriberEvictor,
	schedule string,
	threshold int64,
	logger *slog.Logger,
) *SlowSubscriberEvictionJob {
	return &SlowSubscriberEvictionJob{
		evictor:   evictor,
		schedule:  schedule,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "slow_subscriber_eviction_job"),
	}
}

// Start schedules the job.
func (j *SlowSubscriberEvictionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Slow subscriber eviction job started",
		"schedule", j.schedule, "threshold", j.threshold)
	return nil
}

// Stop unschedules the job.
func (j *SlowSubscriberEvictionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Slow subscriber eviction job stopped")
}

// Run performs one pass and returns the number of evicted subscribers.
func (j *SlowSubscriberEvictionJob) Run(ctx context.Context) int {
	evicted := j.evictor.EvictSlow(j.threshold)
	if evicted > 0 {
		j.logger.WarnContext(ctx, "Evicted slow subscribers", "count", evicted)
	}
	return evicted
}
