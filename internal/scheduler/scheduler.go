// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sakshamfoundation/saksham-web/internal/model"
	"github.com/sakshamfoundation/saksham-web/internal/service"
	"github.com/sakshamfoundation/saksham-web/internal/store"
)

// Job names.
const (
	JobEventRollover   = "event-rollover"
	JobEventLogCleanup = "event-log-cleanup"
)

const (
	// DefaultRolloverSchedule checks for finished events every hour.
	DefaultRolloverSchedule = "@hourly"
	// DefaultCleanupSchedule purges old audit entries once a day.
	DefaultCleanupSchedule = "@daily"
	// DefaultEventLogRetention keeps ninety days of audit entries.
	DefaultEventLogRetention = 90 * 24 * time.Hour

	jobTimeout = time.Minute
)

// Config selects the job schedules.
type Config struct {
	RolloverSchedule  string
	CleanupSchedule   string
	EventLogRetention time.Duration
}

func (c Config) withDefaults() Config {
	if c.RolloverSchedule == "" {
		c.RolloverSchedule = DefaultRolloverSchedule
	}
	if c.CleanupSchedule == "" {
		c.CleanupSchedule = DefaultCleanupSchedule
	}
	if c.EventLogRetention <= 0 {
		c.EventLogRetention = DefaultEventLogRetention
	}
	return c
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

type job struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	run         func(ctx context.Context) error
}

// Scheduler moves finished events to the past list and trims the audit log.
type Scheduler struct {
	queries *store.Queries
	events  *service.EventService
	cron    *cron.Cron
	logger  *slog.Logger
	cfg     Config
	now     func() time.Time

	mu   sync.Mutex
	jobs map[string]*job
}

// New creates a scheduler. Jobs are registered by Start.
func New(db *sql.DB, logger *slog.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		events:  service.NewEventService(db),
		cron:    cron.New(),
		logger:  logger,
		cfg:     cfg.withDefaults(),
		now:     time.Now,
		jobs:    make(map[string]*job),
	}
}

// Start registers the jobs and begins running them.
func (s *Scheduler) Start() error {
	if err := s.register(JobEventRollover, "Move upcoming events whose date has passed to the past list",
		s.cfg.RolloverSchedule, s.RolloverEvents); err != nil {
		return err
	}
	if err := s.register(JobEventLogCleanup, "Delete audit log entries past the retention period",
		s.cfg.CleanupSchedule, s.CleanupEventLog); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) register(name, description, schedule string, run func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %s already registered", name)
	}

	j := &job{name: name, description: description, schedule: schedule, run: run}
	id, err := s.cron.AddFunc(schedule, func() { s.execute(j) })
	if err != nil {
		return fmt.Errorf("scheduling %s with %q: %w", name, schedule, err)
	}
	j.entryID = id
	s.jobs[name] = j

	s.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

func (s *Scheduler) execute(j *job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := j.run(ctx); err != nil {
		s.logger.Error("scheduled job failed", "name", j.name, "error", err)
		_ = s.events.LogSchedulerEvent(ctx, model.EventLevelError, "Scheduled job failed: "+j.name,
			map[string]any{"job": j.name, "error": err.Error()})
	}
}

// Jobs lists the registered jobs by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		entry := s.cron.Entry(j.entryID)
		result = append(result, JobInfo{
			Name:        j.name,
			Description: j.description,
			Schedule:    j.schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}
	sort.Slice(result, func(i, k int) bool { return result[i].Name < result[k].Name })
	return result
}

// TriggerNow runs a registered job immediately on the calling goroutine.
func (s *Scheduler) TriggerNow(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	s.logger.Info("manually triggering job", "name", name)
	return j.run(ctx)
}

// RolloverEvents marks upcoming events dated before now as past.
func (s *Scheduler) RolloverEvents(ctx context.Context) error {
	now := s.now()
	n, err := s.queries.RollOverPastEvents(ctx, now)
	if err != nil {
		return fmt.Errorf("rolling over events: %w", err)
	}
	if n == 0 {
		return nil
	}

	s.logger.Info("rolled over past events", "count", n)
	_ = s.events.LogSchedulerEvent(ctx, model.EventLevelInfo, "Upcoming events moved to past",
		map[string]any{"job": JobEventRollover, "count": n, "at": now.UTC().Format(time.RFC3339)})
	return nil
}

// CleanupEventLog deletes audit entries older than the retention period.
func (s *Scheduler) CleanupEventLog(ctx context.Context) error {
	n, err := s.events.DeleteOldEvents(ctx, s.cfg.EventLogRetention)
	if err != nil {
		return fmt.Errorf("cleaning event log: %w", err)
	}
	if n > 0 {
		s.logger.Info("deleted old event log entries", "count", n, "retention", s.cfg.EventLogRetention)
	}
	return nil
}
