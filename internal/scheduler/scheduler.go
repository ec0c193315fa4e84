// Package scheduler runs recurring summary rebuilds on a cron cadence.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"go-posture-summary/internal/engine"
	"go-posture-summary/internal/model"
	"go-posture-summary/internal/store"
	"go-posture-summary/internal/workbook"
)

// Scheduler owns the cron instance. Each scheduled entry re-runs its spec
// under a fresh run ID so every rebuild is tracked individually.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID // schedule owner run ID -> cron entry
}

func New() *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins dispatching scheduled rebuilds.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts dispatch; rebuilds already running finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Add registers a recurring rebuild of spec. ownerID is the run that
// carried the schedule; each firing creates and tracks a new run.
func (s *Scheduler) Add(ownerID string, spec model.RunSpec) error {
	if spec.Schedule == "" {
		return fmt.Errorf("spec has no schedule expression")
	}

	entryID, err := s.cron.AddFunc(spec.Schedule, func() {
		runID := uuid.New().String()
		fmt.Printf("⏰ Scheduled rebuild for %s firing as run %s\n", ownerID, runID)

		if err := store.SaveRun(runID, spec); err != nil {
			fmt.Printf("❌ Failed to record scheduled run %s: %v\n", runID, err)
			return
		}
		wb, err := workbook.FromSpec(spec.Workbook)
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
			return
		}
		if err := engine.Run(context.Background(), runID, spec, wb); err != nil {
			fmt.Printf("❌ Scheduled run %s failed: %v\n", runID, err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec.Schedule, err)
	}

	s.mu.Lock()
	s.entries[ownerID] = entryID
	s.mu.Unlock()
	return nil
}

// Remove drops the recurring rebuild registered under ownerID.
func (s *Scheduler) Remove(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryID, ok := s.entries[ownerID]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, ownerID)
	}
}

// Count returns the number of registered schedules.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
