package service

import "math"

// EMI returns the fixed monthly installment that fully amortizes principal
// over tenureYears at annualRate percent. Non-positive principal or tenure
// yields 0 rather than an error; a zero rate falls back to straight-line
// repayment.
func EMI(principal, annualRate float64, tenureYears int) float64 {
	if principal <= 0 || tenureYears <= 0 {
		return 0
	}
	monthlyRate := annualRate / 100 / 12
	numPayments := float64(tenureYears * 12)
	if monthlyRate == 0 {
		return principal / numPayments
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -numPayments))
}

// TotalInterest returns the interest paid over the full tenure at the given
// EMI. A degenerate EMI of 0 produces a negative value; callers treat that as
// "no interest".
func TotalInterest(principal, emi float64, tenureYears int) float64 {
	return emi*float64(tenureYears*12) - principal
}

// FutureValueOfInvestment returns the value of investing monthlyAmount at the
// start of every month for tenureYears, compounding at annualRate percent
// (annuity due, hence the trailing growth factor).
func FutureValueOfInvestment(monthlyAmount, annualRate float64, tenureYears int) float64 {
	if monthlyAmount <= 0 || tenureYears <= 0 {
		return 0
	}
	monthlyRate := annualRate / 100 / 12
	numMonths := float64(tenureYears * 12)
	if monthlyRate == 0 {
		return monthlyAmount * numMonths
	}
	return monthlyAmount * (math.Pow(1+monthlyRate, numMonths) - 1) / monthlyRate * (1 + monthlyRate)
}

// RequiredInvestment returns the monthly contribution needed to reach
// futureValue after tenureYears at annualRate percent. Exact algebraic
// inverse of FutureValueOfInvestment for the same rate and tenure.
func RequiredInvestment(futureValue, annualRate float64, tenureYears int) float64 {
	if futureValue <= 0 || tenureYears <= 0 {
		return 0
	}
	monthlyRate := annualRate / 100 / 12
	numMonths := float64(tenureYears * 12)
	if monthlyRate == 0 {
		return futureValue / numMonths
	}
	return futureValue * monthlyRate / ((math.Pow(1+monthlyRate, numMonths) - 1) * (1 + monthlyRate))
}

// RemainingBalance returns the outstanding principal after elapsedYears of
// payments on a loan originally amortized over originalTenureYears. Inputs
// outside the valid range return the principal unchanged. The result is
// clamped at zero: near full payoff the schedule can overshoot into a tiny
// negative balance.
func RemainingBalance(principal, annualRate float64, originalTenureYears, elapsedYears int) float64 {
	if principal <= 0 || originalTenureYears <= 0 || elapsedYears < 0 || elapsedYears > originalTenureYears {
		return principal
	}
	if elapsedYears == 0 {
		return principal
	}
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return principal * (1 - float64(elapsedYears)/float64(originalTenureYears))
	}
	emi := EMI(principal, annualRate, originalTenureYears)
	paymentsMade := float64(elapsedYears * 12)
	growth := math.Pow(1+monthlyRate, paymentsMade)
	balance := principal*growth - emi*(growth-1)/monthlyRate
	return math.Max(0, balance)
}
