// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are cron expressions with a leading seconds field.
//
// # Available Jobs
//
// 1. OverduePickupJob - finds orders that are READY_FOR_PICKUP past their estimated pickup
// time plus a grace period and sends one notice per order to the vendor's notifications topic
// 2. SlowSubscriberEvictionJob - disconnects live subscribers whose recent deliveries all failed
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOverduePickupJob(overdueHandler, notificationHub, "0 * * * * *", 10*time.Minute, logger),
//		jobs.NewSlowSubscriberEvictionJob(notificationHub, "*/15 * * * * *", 32, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed passes are logged and retried on the next tick. A failed start stops the jobs
// that were already running.
package jobs
