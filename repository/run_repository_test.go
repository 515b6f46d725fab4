package repository

import (
	"context"
	"path/filepath"
	"testing"

	"loan-optimizer/domain"
)

func sampleRun() domain.ScenarioRun {
	return domain.ScenarioRun{
		Mode: "net-zero",
		Input: domain.ScenarioInput{
			LoanAmount:               5_000_000,
			MonthlyBudget:            60_000,
			ExpectedAnnualReturnRate: 12,
		},
		Status:            domain.StatusSuccess,
		MonthlyEMI:        36688,
		MonthlyInvestment: 2325,
		TotalInterest:     8_207_000,
		FutureValue:       8_207_000,
	}
}

func TestMemoryRunRepository(t *testing.T) {
	repo := NewMemoryRunRepository()

	if err := repo.Save(sampleRun()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Save(sampleRun()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runs := repo.Runs()
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Mode != "net-zero" || runs[0].Status != domain.StatusSuccess {
		t.Errorf("unexpected run contents: %+v", runs[0])
	}

	if err := repo.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

func TestSQLiteRunRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	repo, err := NewSQLiteRunRepository(path)
	if err != nil {
		t.Fatalf("opening repository: %v", err)
	}

	if err := repo.Save(sampleRun()); err != nil {
		t.Fatalf("saving run: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("closing repository: %v", err)
	}

	// Reopening runs the migrations again; they must be idempotent.
	repo, err = NewSQLiteRunRepository(path)
	if err != nil {
		t.Fatalf("reopening repository: %v", err)
	}
	if err := repo.Save(sampleRun()); err != nil {
		t.Fatalf("saving after reopen: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("closing repository: %v", err)
	}
}

func TestMockCache(t *testing.T) {
	cache := NewMockCache()
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	if err := cache.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, ok := cache.Get(ctx, "k")
	if !ok || val != "v" {
		t.Errorf("expected hit with v, got %q (%v)", val, ok)
	}
}
