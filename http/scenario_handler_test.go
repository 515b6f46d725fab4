package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loan-optimizer/domain"
	"loan-optimizer/repository"
	"loan-optimizer/service"
)

func newTestHandler() *ScenarioHandler {
	svc := service.NewScenarioService(
		domain.LoanTerms{AnnualRate: 8, TenureYears: 30},
		repository.NewMemoryRunRepository(),
		repository.NewMockCache(),
	)
	return NewScenarioHandler(svc)
}

func postJSON(path string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNetZeroHandler_OK(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 5000000,
		"monthlyBudget": 60000,
		"expectedAnnualReturnRate": 12
	}`)

	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, postJSON("/api/calculate-net-zero-interest", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.NetZeroResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Status != domain.StatusSuccess {
		t.Errorf("expected success, got %s", result.Status)
	}
	if result.MonthlyEMI <= 0 {
		t.Errorf("expected positive EMI, got %.2f", result.MonthlyEMI)
	}
}

func TestNetZeroHandler_RiskAppetiteResolved(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 5000000,
		"monthlyBudget": 60000,
		"riskAppetite": "high"
	}`)

	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, postJSON("/api/calculate-net-zero-interest", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestNetZeroHandler_UnknownRiskAppetite(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 5000000,
		"monthlyBudget": 60000,
		"riskAppetite": "reckless"
	}`)

	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, postJSON("/api/calculate-net-zero-interest", body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestNetZeroHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/calculate-net-zero-interest", nil)
	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestNetZeroHandler_BadRequest(t *testing.T) {
	handler := newTestHandler()

	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, postJSON("/api/calculate-net-zero-interest", []byte(`{invalid-json}`)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Status != domain.StatusError {
		t.Errorf("expected error status, got %s", resp.Status)
	}
	if resp.Message == "" {
		t.Error("expected a message in the error body")
	}
}

func TestNetZeroHandler_InvalidReturnRate(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 5000000,
		"monthlyBudget": 60000,
		"expectedAnnualReturnRate": -5
	}`)

	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, postJSON("/api/calculate-net-zero-interest", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Status != domain.StatusError {
		t.Errorf("expected error status, got %s", resp.Status)
	}
}

func TestNetZeroHandler_ContentTypeRequired(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate-net-zero-interest",
		bytes.NewBufferString(`{"loanAmount": 1}`))
	w := httptest.NewRecorder()
	handler.NetZeroInterest(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestMinTimeHandler_OK(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 2000000,
		"monthlyBudget": 25000,
		"expectedAnnualReturnRate": 12
	}`)

	w := httptest.NewRecorder()
	handler.MinTimeToNetZero(w, postJSON("/api/calculate-min-time-net-zero", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.MinTimeResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.MinTimeYears < 1 || result.MinTimeYears > 30 {
		t.Errorf("expected tenure in 1..30, got %d", result.MinTimeYears)
	}
}

func TestMaxGrowthHandler_OK(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 2000000,
		"monthlyBudget": 25000,
		"expectedAnnualReturnRate": 12,
		"optimizationPeriodYears": 10
	}`)

	w := httptest.NewRecorder()
	handler.MaxGrowth(w, postJSON("/api/calculate-max-growth", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.MaxGrowthResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.NetWealthAtPeriodEnd != result.EstimatedInvestmentFutureValue-result.RemainingLoanBalance {
		t.Error("net wealth must equal future value minus remaining balance")
	}
}

func TestMaxGrowthHandler_MissingPeriod(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": 2000000,
		"monthlyBudget": 25000,
		"expectedAnnualReturnRate": 12
	}`)

	w := httptest.NewRecorder()
	handler.MaxGrowth(w, postJSON("/api/calculate-max-growth", body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMaxGrowthHandler_NonPositiveAmount(t *testing.T) {
	handler := newTestHandler()

	body := []byte(`{
		"loanAmount": -100,
		"monthlyBudget": 25000,
		"expectedAnnualReturnRate": 12,
		"optimizationPeriodYears": 10
	}`)

	w := httptest.NewRecorder()
	handler.MaxGrowth(w, postJSON("/api/calculate-max-growth", body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
