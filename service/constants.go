package service

import "time"

const (
	MaxLoanAmount       = 1_000_000_000.0 // ceiling enforced at the boundary
	MaxMonthlyBudget    = 100_000_000.0
	MaxAnnualReturnRate = 100.0 // 100% annual return

	MaxOptimizationYears = 50

	// CacheTTL bounds how long a computed scenario may be served from cache.
	CacheTTL = 24 * time.Hour
)
