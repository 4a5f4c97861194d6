package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"rsvp-backend/pkg/logger"
)

// Task is one unit of maintenance work. Returned errors are logged, never retried.
type Task func(ctx context.Context) error

type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task Task) error
	// ListJobs reports every job with its last outcome, ordered by id.
	ListJobs() []JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID        string
	CronExpr  string
	LastRun   *time.Time
	LastError string
	NextRun   *time.Time
}

type job struct {
	info JobInfo
	task Task
	ref  *gocron.Job
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*job
	mu        sync.RWMutex
	running   bool
	timeout   time.Duration
}

func NewEventScheduler() EventScheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &GocronScheduler{
		scheduler: scheduler,
		jobs:      make(map[string]*job),
		timeout:   10 * time.Minute,
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.SchedulerWarn("start", "Scheduler is already running", nil)
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Scheduler("started", "Scheduler started", map[string]interface{}{"jobs": len(s.jobs)})
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		logger.SchedulerWarn("stop", "Scheduler is not running", nil)
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Scheduler("stopped", "Scheduler stopped", nil)
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	ref, err := s.scheduler.Cron(cronExpr).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.execute(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	nextRun := ref.NextRun()
	s.jobs[id] = &job{
		info: JobInfo{
			ID:       id,
			CronExpr: cronExpr,
			NextRun:  &nextRun,
		},
		task: task,
		ref:  ref,
	}

	logger.Scheduler("job_added", "Job added", map[string]interface{}{"job_id": id, "cron_expr": cronExpr, "next_run": nextRun.Format(time.RFC3339)})
	return nil
}

// execute runs the task outside the lock and records the outcome.
func (s *GocronScheduler) execute(ctx context.Context, id string) (err error) {
	s.mu.RLock()
	j, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", id, r)
		}

		s.mu.Lock()
		j.info.LastRun = &started
		j.info.LastError = ""
		if err != nil {
			j.info.LastError = err.Error()
		}
		if j.ref != nil {
			nextRun := j.ref.NextRun()
			j.info.NextRun = &nextRun
		}
		s.mu.Unlock()

		data := map[string]interface{}{
			"job_id":   id,
			"duration": time.Since(started).String(),
		}
		if err != nil {
			logger.SchedulerError("job_failed", "Job failed", err, data)
		} else {
			logger.Scheduler("job_completed", "Job completed", data)
		}
	}()

	return j.task(ctx)
}

func (s *GocronScheduler) ListJobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := j.info
		if j.info.LastRun != nil {
			lastRun := *j.info.LastRun
			info.LastRun = &lastRun
		}
		if j.ref != nil {
			nextRun := j.ref.NextRun()
			info.NextRun = &nextRun
		}
		jobs = append(jobs, info)
	}

	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs
}

// ValidateCronExpression checks an expression without scheduling anything.
func ValidateCronExpression(cronExpr string) error {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Cron(cronExpr).Do(func() {})
	if err != nil {
		return fmt.Errorf("invalid cron expression: %v", err)
	}
	return nil
}
