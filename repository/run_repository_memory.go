package repository

import (
	"sync"

	"loan-optimizer/domain"
)

// MemoryRunRepository keeps scenario runs in memory. Used when no SQLite
// path is configured.
type MemoryRunRepository struct {
	mu   sync.Mutex
	runs []domain.ScenarioRun
}

func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{}
}

func (r *MemoryRunRepository) Save(run domain.ScenarioRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

// Runs returns a copy of the recorded runs.
func (r *MemoryRunRepository) Runs() []domain.ScenarioRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ScenarioRun, len(r.runs))
	copy(out, r.runs)
	return out
}

func (r *MemoryRunRepository) Close() error {
	return nil
}
