package di

import (
	"context"

	"rsvp-backend/application/serviceimpl"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/scheduler"
)

const (
	JobLogRetention      = "log-retention"
	JobRosterStats       = "roster-stats"
	JobActivityRetention = "activity-retention"
)

// scheduleMaintenanceJobs registers the ops jobs. None of them mutate guests.
func (c *Container) scheduleMaintenanceJobs() {
	cfg := c.Config.Scheduler

	c.addJob(JobLogRetention, cfg.LogRetentionCron, LogRetentionTask(c.Config.Logging.RetentionDays))
	c.addJob(JobRosterStats, cfg.RosterStatsCron, RosterStatsTask(c.GuestRepository))
	c.addJob(JobActivityRetention, cfg.ActivityRetentionCron, func(ctx context.Context) error {
		deleted, err := c.ActivityLogService.Cleanup(ctx, cfg.ActivityRetentionDays)
		if err != nil {
			return err
		}
		if deleted > 0 {
			logger.Scheduler("activity_pruned", "Old activity logs deleted", map[string]interface{}{
				"deleted": deleted,
				"days":    cfg.ActivityRetentionDays,
			})
		}
		return nil
	})
}

func (c *Container) addJob(id, cronExpr string, task scheduler.Task) {
	if err := c.EventScheduler.AddJob(id, cronExpr, task); err != nil {
		logger.StartupWarn("job_schedule_failed", "Failed to schedule job", map[string]interface{}{
			"job_id": id,
			"error":  err.Error(),
		})
		return
	}
	logger.Startup("job_scheduled", "Maintenance job scheduled", map[string]interface{}{
		"job_id":    id,
		"cron_expr": cronExpr,
	})
}

// LogRetentionTask deletes category log files older than days.
func LogRetentionTask(days int) scheduler.Task {
	return func(ctx context.Context) error {
		removed, err := logger.PruneLogFiles(days)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Scheduler("logs_pruned", "Old log files deleted", map[string]interface{}{
				"removed": removed,
				"days":    days,
			})
		}
		return nil
	}
}

// RosterStatsTask writes a roster snapshot to the guest log.
func RosterStatsTask(guestRepo repositories.GuestRepository) scheduler.Task {
	return func(ctx context.Context) error {
		guests, err := guestRepo.List(ctx, repositories.GuestListFilter{})
		if err != nil {
			return err
		}
		stats := serviceimpl.ComputeRosterStats(guests)
		logger.Guest("roster_snapshot", "Roster stats snapshot", map[string]interface{}{
			"total":     stats.Total,
			"adults":    stats.Adults,
			"children":  stats.Children,
			"pending":   stats.Pending,
			"attending": stats.Attending,
			"declined":  stats.Declined,
			"waitlist":  stats.Waitlist,
		})
		return nil
	}
}
