// Package scheduler runs named housekeeping jobs on cron schedules.
package scheduler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

// Scheduler keeps at most one cron entry per job name.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	jobsMux sync.RWMutex
}

// New creates a scheduler that accepts six-field (seconds first) expressions.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		jobs: make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	utils.LogInfo("scheduler started", map[string]interface{}{"jobs": s.Jobs()})
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	utils.LogInfo("scheduler stopped", nil)
}

// Add schedules job under name, replacing any job already registered with it.
func (s *Scheduler) Add(name, schedule string, job func()) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}

	entryID, err := s.cron.AddFunc(schedule, job)
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	s.jobs[name] = entryID
	utils.LogDebug("job scheduled", map[string]interface{}{"job": name, "schedule": schedule})
	return nil
}

// Remove unschedules a job by name.
func (s *Scheduler) Remove(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}
}

// Jobs returns the registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
