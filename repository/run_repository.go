package repository

import "loan-optimizer/domain"

// RunRepository persists computed scenario runs for later analysis.
type RunRepository interface {
	Save(run domain.ScenarioRun) error
	Close() error
}
