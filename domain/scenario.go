package domain

// Status classifies the outcome of a scenario computation.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusWarning       Status = "warning"
	StatusNotAchievable Status = "not_achievable"
	StatusError         Status = "error"
)

// LoanTerms are the fixed assumptions of the underlying loan: every scenario
// is evaluated against the same annual rate and maximum tenure.
type LoanTerms struct {
	AnnualRate  float64
	TenureYears int
}

// RiskAppetiteReturns maps a risk profile to its assumed annual return (percent).
// Clients may send a profile instead of an explicit return rate.
var RiskAppetiteReturns = map[string]float64{
	"low":      6,
	"moderate": 9,
	"high":     12,
}

// ScenarioInput carries the parameters shared by all scenario operations.
// OptimizationPeriodYears is only meaningful for the max-growth scenario.
type ScenarioInput struct {
	LoanAmount               float64 `json:"loanAmount"`
	MonthlyBudget            float64 `json:"monthlyBudget"`
	ExpectedAnnualReturnRate float64 `json:"expectedAnnualReturnRate"`
	RiskAppetite             string  `json:"riskAppetite,omitempty"`
	OptimizationPeriodYears  int     `json:"optimizationPeriodYears,omitempty"`
}

// InterestChart compares total loan interest against projected investment gain.
type InterestChart struct {
	LoanInterest   float64 `json:"loanInterest"`
	InvestmentGain float64 `json:"investmentGain"`
}

// GrowthChart compares projected investment value against the outstanding loan.
type GrowthChart struct {
	InvestmentFV  float64 `json:"investmentFV"`
	RemainingLoan float64 `json:"remainingLoan"`
}

type NetZeroResult struct {
	Status                         Status        `json:"status"`
	MonthlyEMI                     float64       `json:"monthlyEMI"`
	MonthlyInvestment              float64       `json:"monthlyInvestment"`
	TotalLoanInterestPayable       float64       `json:"totalLoanInterestPayable"`
	EstimatedInvestmentFutureValue float64       `json:"estimatedInvestmentFutureValue"`
	GuidanceMessage                string        `json:"guidanceMessage"`
	Recommendation                 string        `json:"recommendation"`
	ChartData                      InterestChart `json:"chartData"`
}

type MinTimeResult struct {
	Status                         Status        `json:"status"`
	MinTimeYears                   int           `json:"minTimeYears"`
	MonthlyEMI                     float64       `json:"monthlyEMI"`
	MonthlyInvestment              float64       `json:"monthlyInvestment"`
	TotalLoanInterestPayable       float64       `json:"totalLoanInterestPayable"`
	EstimatedInvestmentFutureValue float64       `json:"estimatedInvestmentFutureValue"`
	GuidanceMessage                string        `json:"guidanceMessage"`
	Recommendation                 string        `json:"recommendation"`
	ChartData                      InterestChart `json:"chartData"`
}

type MaxGrowthResult struct {
	Status                         Status      `json:"status"`
	MonthlyEMI                     float64     `json:"monthlyEMI"`
	MonthlyInvestment              float64     `json:"monthlyInvestment"`
	OptimizationPeriodYears        int         `json:"optimizationPeriodYears"`
	EstimatedInvestmentFutureValue float64     `json:"estimatedInvestmentFutureValue"`
	RemainingLoanBalance           float64     `json:"remainingLoanBalance"`
	NetWealthAtPeriodEnd           float64     `json:"netWealthAtPeriodEnd"`
	GuidanceMessage                string      `json:"guidanceMessage"`
	Recommendation                 string      `json:"recommendation"`
	ChartData                      GrowthChart `json:"chartData"`
}

// ScenarioRun is the persisted record of one computed scenario.
type ScenarioRun struct {
	Mode              string
	Input             ScenarioInput
	Status            Status
	MonthlyEMI        float64
	MonthlyInvestment float64
	TotalInterest     float64
	FutureValue       float64
	RemainingBalance  float64
	NetWealth         float64
	MinTimeYears      int
}
