package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"loan-optimizer/domain"
	"loan-optimizer/repository"
)

// ErrInvalidReturnRate rejects a missing, non-finite or non-positive expected
// annual return rate before any computation runs.
var ErrInvalidReturnRate = errors.New("expected annual return rate must be a positive number")

// ScenarioService evaluates loan-versus-investment scenarios against a fixed
// set of loan terms. Results are cached by input and every run is recorded.
type ScenarioService struct {
	terms    domain.LoanTerms
	runs     repository.RunRepository
	cache    repository.CacheRepository
	guidance *GuidanceService
}

func NewScenarioService(
	terms domain.LoanTerms,
	runs repository.RunRepository,
	cache repository.CacheRepository,
) *ScenarioService {
	return &ScenarioService{
		terms:    terms,
		runs:     runs,
		cache:    cache,
		guidance: NewGuidanceService(),
	}
}

func (s *ScenarioService) validateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return ErrInvalidReturnRate
	}
	if rate > MaxAnnualReturnRate {
		return fmt.Errorf("expected annual return rate exceeds the maximum of %.0f%%", MaxAnnualReturnRate)
	}
	return nil
}

// NetZeroInterest determines whether investing the budget left after the EMI
// can offset the total interest of the fixed-terms loan by maturity.
func (s *ScenarioService) NetZeroInterest(
	ctx context.Context,
	input domain.ScenarioInput,
) (domain.NetZeroResult, error) {

	if err := s.validateRate(input.ExpectedAnnualReturnRate); err != nil {
		return domain.NetZeroResult{}, err
	}

	key := cacheKey("net-zero", input)
	var cached domain.NetZeroResult
	if s.lookupCached(ctx, key, &cached) {
		return cached, nil
	}

	emi := EMI(input.LoanAmount, s.terms.AnnualRate, s.terms.TenureYears)
	totalInterest := TotalInterest(input.LoanAmount, emi, s.terms.TenureYears)
	required := RequiredInvestment(totalInterest, input.ExpectedAnnualReturnRate, s.terms.TenureYears)
	available := input.MonthlyBudget - emi

	var result domain.NetZeroResult
	switch {
	case available < 0:
		// The loan alone exceeds the budget; nothing left to invest.
		result = domain.NetZeroResult{
			Status:                   domain.StatusNotAchievable,
			MonthlyEMI:               emi,
			TotalLoanInterestPayable: totalInterest,
			GuidanceMessage: fmt.Sprintf(
				"The loan is unaffordable: the EMI of %.0f exceeds your monthly budget of %.0f by %.0f.",
				emi, input.MonthlyBudget, emi-input.MonthlyBudget),
			ChartData: domain.InterestChart{LoanInterest: totalInterest},
		}
	case required > available:
		futureValue := FutureValueOfInvestment(available, input.ExpectedAnnualReturnRate, s.terms.TenureYears)
		result = domain.NetZeroResult{
			Status:                         domain.StatusWarning,
			MonthlyEMI:                     emi,
			MonthlyInvestment:              available,
			TotalLoanInterestPayable:       totalInterest,
			EstimatedInvestmentFutureValue: futureValue,
			GuidanceMessage: fmt.Sprintf(
				"Cannot fully offset the loan interest: you need to invest %.0f monthly, but only %.0f is available after the EMI. Investing that amount covers %.0f of the %.0f interest.",
				required, available, futureValue, totalInterest),
			ChartData: domain.InterestChart{LoanInterest: totalInterest, InvestmentGain: futureValue},
		}
	default:
		result = domain.NetZeroResult{
			Status:                   domain.StatusSuccess,
			MonthlyEMI:               emi,
			MonthlyInvestment:        required,
			TotalLoanInterestPayable: totalInterest,
			// Target is hit by construction: the required investment grows to
			// exactly the total interest.
			EstimatedInvestmentFutureValue: totalInterest,
			GuidanceMessage: fmt.Sprintf(
				"To reach net zero interest, allocate %.0f monthly to investments.", required),
			ChartData: domain.InterestChart{LoanInterest: totalInterest, InvestmentGain: totalInterest},
		}
	}
	result.Recommendation = s.guidance.NetZeroRecommendation(result, input)

	s.storeCached(ctx, key, result)
	s.record(domain.ScenarioRun{
		Mode:              "net-zero",
		Input:             input,
		Status:            result.Status,
		MonthlyEMI:        emi,
		MonthlyInvestment: result.MonthlyInvestment,
		TotalInterest:     totalInterest,
		FutureValue:       result.EstimatedInvestmentFutureValue,
	})
	return result, nil
}

// MinTimeToNetZero finds the shortest tenure, ascending from one year up to
// the fixed maximum, at which the investment growth of the residual budget
// covers the loan interest for that same tenure.
func (s *ScenarioService) MinTimeToNetZero(
	ctx context.Context,
	input domain.ScenarioInput,
) (domain.MinTimeResult, error) {

	if err := s.validateRate(input.ExpectedAnnualReturnRate); err != nil {
		return domain.MinTimeResult{}, err
	}

	key := cacheKey("min-time", input)
	var cached domain.MinTimeResult
	if s.lookupCached(ctx, key, &cached) {
		return cached, nil
	}

	var result domain.MinTimeResult
	found := false
	for tenure := 1; tenure <= s.terms.TenureYears; tenure++ {
		emi := EMI(input.LoanAmount, s.terms.AnnualRate, tenure)
		available := input.MonthlyBudget - emi
		if available < 0 {
			continue // loan payment alone exceeds the budget at this tenure
		}
		totalInterest := TotalInterest(input.LoanAmount, emi, tenure)
		futureValue := FutureValueOfInvestment(available, input.ExpectedAnnualReturnRate, tenure)
		if futureValue >= totalInterest {
			result = domain.MinTimeResult{
				Status:                         domain.StatusSuccess,
				MinTimeYears:                   tenure,
				MonthlyEMI:                     emi,
				MonthlyInvestment:              available,
				TotalLoanInterestPayable:       totalInterest,
				EstimatedInvestmentFutureValue: futureValue,
				GuidanceMessage: fmt.Sprintf(
					"Achieve net zero interest in %d years by allocating %.0f monthly to investments.",
					tenure, available),
				ChartData: domain.InterestChart{LoanInterest: totalInterest, InvestmentGain: futureValue},
			}
			found = true
			break
		}
	}

	if !found {
		// Recompute at the maximum tenure to surface the closest achievable
		// state; the loop may have skipped it as infeasible.
		emi := EMI(input.LoanAmount, s.terms.AnnualRate, s.terms.TenureYears)
		available := math.Max(0, input.MonthlyBudget-emi)
		totalInterest := TotalInterest(input.LoanAmount, emi, s.terms.TenureYears)
		futureValue := FutureValueOfInvestment(available, input.ExpectedAnnualReturnRate, s.terms.TenureYears)
		result = domain.MinTimeResult{
			Status:                         domain.StatusNotAchievable,
			MinTimeYears:                   s.terms.TenureYears,
			MonthlyEMI:                     emi,
			MonthlyInvestment:              available,
			TotalLoanInterestPayable:       totalInterest,
			EstimatedInvestmentFutureValue: futureValue,
			GuidanceMessage: fmt.Sprintf(
				"Cannot achieve net zero interest within %d years with the current budget and investment strategy.",
				s.terms.TenureYears),
			ChartData: domain.InterestChart{LoanInterest: totalInterest, InvestmentGain: futureValue},
		}
	}
	result.Recommendation = s.guidance.MinTimeRecommendation(result, input)

	s.storeCached(ctx, key, result)
	s.record(domain.ScenarioRun{
		Mode:              "min-time",
		Input:             input,
		Status:            result.Status,
		MonthlyEMI:        result.MonthlyEMI,
		MonthlyInvestment: result.MonthlyInvestment,
		TotalInterest:     result.TotalLoanInterestPayable,
		FutureValue:       result.EstimatedInvestmentFutureValue,
		MinTimeYears:      result.MinTimeYears,
	})
	return result, nil
}

// MaxGrowth projects net wealth at the requested horizon: investment value of
// the residual budget minus the loan balance still outstanding at that point.
func (s *ScenarioService) MaxGrowth(
	ctx context.Context,
	input domain.ScenarioInput,
) (domain.MaxGrowthResult, error) {

	if err := s.validateRate(input.ExpectedAnnualReturnRate); err != nil {
		return domain.MaxGrowthResult{}, err
	}

	key := cacheKey("max-growth", input)
	var cached domain.MaxGrowthResult
	if s.lookupCached(ctx, key, &cached) {
		return cached, nil
	}

	emi := EMI(input.LoanAmount, s.terms.AnnualRate, s.terms.TenureYears)
	available := input.MonthlyBudget - emi
	remaining := RemainingBalance(input.LoanAmount, s.terms.AnnualRate, s.terms.TenureYears, input.OptimizationPeriodYears)

	var result domain.MaxGrowthResult
	if available <= 0 {
		result = domain.MaxGrowthResult{
			Status:                  domain.StatusNotAchievable,
			MonthlyEMI:              emi,
			OptimizationPeriodYears: input.OptimizationPeriodYears,
			RemainingLoanBalance:    remaining,
			GuidanceMessage:         "No funds are available for investment after the EMI.",
			ChartData:               domain.GrowthChart{RemainingLoan: remaining},
		}
	} else {
		futureValue := FutureValueOfInvestment(available, input.ExpectedAnnualReturnRate, input.OptimizationPeriodYears)
		netWealth := futureValue - remaining
		result = domain.MaxGrowthResult{
			Status:                         domain.StatusSuccess,
			MonthlyEMI:                     emi,
			MonthlyInvestment:              available,
			OptimizationPeriodYears:        input.OptimizationPeriodYears,
			EstimatedInvestmentFutureValue: futureValue,
			RemainingLoanBalance:           remaining,
			NetWealthAtPeriodEnd:           netWealth,
			GuidanceMessage: fmt.Sprintf(
				"Your estimated net wealth in %d years is %.0f.",
				input.OptimizationPeriodYears, netWealth),
			ChartData: domain.GrowthChart{InvestmentFV: futureValue, RemainingLoan: remaining},
		}
	}
	result.Recommendation = s.guidance.MaxGrowthRecommendation(result, input)

	s.storeCached(ctx, key, result)
	s.record(domain.ScenarioRun{
		Mode:              "max-growth",
		Input:             input,
		Status:            result.Status,
		MonthlyEMI:        emi,
		MonthlyInvestment: result.MonthlyInvestment,
		FutureValue:       result.EstimatedInvestmentFutureValue,
		RemainingBalance:  remaining,
		NetWealth:         result.NetWealthAtPeriodEnd,
	})
	return result, nil
}

func cacheKey(mode string, input domain.ScenarioInput) string {
	return fmt.Sprintf("scenario:%s:%g:%g:%g:%d",
		mode, input.LoanAmount, input.MonthlyBudget,
		input.ExpectedAnnualReturnRate, input.OptimizationPeriodYears)
}

func (s *ScenarioService) lookupCached(ctx context.Context, key string, out any) bool {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Warning: discarding unreadable cache entry %s: %v", key, err)
		return false
	}
	return true
}

func (s *ScenarioService) storeCached(ctx context.Context, key string, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), CacheTTL); err != nil {
		log.Printf("Warning: failed to cache scenario result: %v", err)
	}
}

// record persists the run; failures are logged, never surfaced to the caller.
func (s *ScenarioService) record(run domain.ScenarioRun) {
	if err := s.runs.Save(run); err != nil {
		log.Printf("Warning: failed to record scenario run: %v", err)
	}
}
