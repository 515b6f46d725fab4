package repository

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"loan-optimizer/domain"
)

// SQLiteRunRepository appends scenario runs to a local SQLite database.
type SQLiteRunRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRunRepository opens (or creates) the database and runs migrations.
func NewSQLiteRunRepository(dbPath string) (*SQLiteRunRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis queries can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRunRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("sqlite run repository opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRunRepository) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scenario_runs (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			mode               TEXT NOT NULL,
			loan_amount        REAL,
			monthly_budget     REAL,
			return_rate        REAL,
			period_years       INTEGER,
			status             TEXT,
			monthly_emi        REAL,
			monthly_investment REAL,
			total_interest     REAL,
			future_value       REAL,
			remaining_balance  REAL,
			net_wealth         REAL,
			min_time_years     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scenario_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_mode ON scenario_runs(mode)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRunRepository) Save(run domain.ScenarioRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scenario_runs
		(timestamp, mode, loan_amount, monthly_budget, return_rate, period_years,
		 status, monthly_emi, monthly_investment,
		 total_interest, future_value, remaining_balance, net_wealth, min_time_years)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Mode,
		run.Input.LoanAmount, run.Input.MonthlyBudget,
		run.Input.ExpectedAnnualReturnRate, run.Input.OptimizationPeriodYears,
		string(run.Status), run.MonthlyEMI, run.MonthlyInvestment,
		run.TotalInterest, run.FutureValue, run.RemainingBalance,
		run.NetWealth, run.MinTimeYears,
	)
	return err
}

func (r *SQLiteRunRepository) Close() error {
	log.Println("closing sqlite run repository")
	return r.db.Close()
}
