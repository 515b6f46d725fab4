package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"loan-optimizer/domain"
)

// GuidanceService produces the short recommendation attached to every
// scenario result. With an OpenAI key configured it asks the model for a
// tailored recommendation; otherwise, and on any API failure, it falls back
// to deterministic per-outcome text.
type GuidanceService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewGuidanceService() *GuidanceService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &GuidanceService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GuidanceService) NetZeroRecommendation(result domain.NetZeroResult, input domain.ScenarioInput) string {
	var fallback string
	switch result.Status {
	case domain.StatusSuccess:
		fallback = "Achievable. Your investment strategy is aligned to offset the loan interest."
	case domain.StatusWarning:
		fallback = "Partially achievable. Increase your budget or raise your expected return to fully offset the interest."
	default:
		fallback = "Increase budget or reduce the loan to achieve this goal."
	}
	if !g.enabled {
		return fallback
	}

	prompt := fmt.Sprintf(`A borrower has a loan of %.0f, a monthly budget of %.0f, and expects a %.2f%% annual return on investments.
The monthly EMI is %.0f, total loan interest is %.0f, and investing %.0f monthly is projected to grow to %.0f by loan maturity (outcome: %s).
In one or two sentences, give a practical recommendation on offsetting the loan interest through investing.`,
		input.LoanAmount, input.MonthlyBudget, input.ExpectedAnnualReturnRate,
		result.MonthlyEMI, result.TotalLoanInterestPayable,
		result.MonthlyInvestment, result.EstimatedInvestmentFutureValue, result.Status)

	text, err := g.callLLM(prompt)
	if err != nil {
		log.Printf("Warning: guidance generation failed, using fallback: %v", err)
		return fallback
	}
	return text
}

func (g *GuidanceService) MinTimeRecommendation(result domain.MinTimeResult, input domain.ScenarioInput) string {
	fallback := "Increase budget, reduce the loan, or raise your expected return."
	if result.Status == domain.StatusSuccess {
		fallback = "Optimal tenure found for offsetting interest."
	}
	if !g.enabled {
		return fallback
	}

	prompt := fmt.Sprintf(`A borrower has a loan of %.0f, a monthly budget of %.0f, and expects a %.2f%% annual return on investments.
The shortest tenure at which investment growth covers the loan interest is %d years (outcome: %s), with an EMI of %.0f and %.0f invested monthly.
In one or two sentences, give a practical recommendation on the repayment-versus-investment timeline.`,
		input.LoanAmount, input.MonthlyBudget, input.ExpectedAnnualReturnRate,
		result.MinTimeYears, result.Status, result.MonthlyEMI, result.MonthlyInvestment)

	text, err := g.callLLM(prompt)
	if err != nil {
		log.Printf("Warning: guidance generation failed, using fallback: %v", err)
		return fallback
	}
	return text
}

func (g *GuidanceService) MaxGrowthRecommendation(result domain.MaxGrowthResult, input domain.ScenarioInput) string {
	fallback := "Increase budget or reduce the loan to enable investment."
	if result.Status == domain.StatusSuccess {
		fallback = "Focus on wealth accumulation while servicing the loan."
	}
	if !g.enabled {
		return fallback
	}

	prompt := fmt.Sprintf(`A borrower has a loan of %.0f, a monthly budget of %.0f, and expects a %.2f%% annual return on investments.
Over a %d-year horizon the investment is projected at %.0f against a remaining loan balance of %.0f, for a net wealth of %.0f (outcome: %s).
In one or two sentences, give a practical recommendation on maximizing wealth over this horizon.`,
		input.LoanAmount, input.MonthlyBudget, input.ExpectedAnnualReturnRate,
		result.OptimizationPeriodYears, result.EstimatedInvestmentFutureValue,
		result.RemainingLoanBalance, result.NetWealthAtPeriodEnd, result.Status)

	text, err := g.callLLM(prompt)
	if err != nil {
		log.Printf("Warning: guidance generation failed, using fallback: %v", err)
		return fallback
	}
	return text
}

func (g *GuidanceService) callLLM(prompt string) (string, error) {
	reqBody := chatRequest{
		Model: "gpt-4o-mini",
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a financial advisor specializing in loan amortization and recurring investment planning. You give concise, practical, realistic recommendations in plain language.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 150,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, g.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return chatResp.Choices[0].Message.Content, nil
}
