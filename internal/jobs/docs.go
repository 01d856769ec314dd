// Package jobs provides scheduled background tasks for the brokerage engine.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// 1. HistoryConsistencyJob - replays the commercial and delivery status
// history of every stored request and logs each request whose replayed
// status differs from the stored one
//
// # Usage
//
//	jobManager := jobs.NewJobManager(verifyHistoryHandler, metrics, "0 */15 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed check is logged and retried on the next tick. Drift is reported,
// never repaired.
package jobs
