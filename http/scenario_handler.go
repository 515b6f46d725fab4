package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"loan-optimizer/domain"
	"loan-optimizer/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
}

func NewScenarioHandler(service *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

type errorResponse struct {
	Status  domain.Status `json:"status"`
	Message string        `json:"message"`
}

func (h *ScenarioHandler) NetZeroInterest(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r, false)
	if !ok {
		return
	}
	result, err := h.service.NetZeroInterest(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, result)
}

func (h *ScenarioHandler) MinTimeToNetZero(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r, false)
	if !ok {
		return
	}
	result, err := h.service.MinTimeToNetZero(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, result)
}

func (h *ScenarioHandler) MaxGrowth(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r, true)
	if !ok {
		return
	}
	result, err := h.service.MaxGrowth(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, result)
}

// decodeInput parses and validates the request body. A risk appetite profile
// is resolved to its return rate when no explicit rate is given; the rate
// itself is validated by the service.
func (h *ScenarioHandler) decodeInput(
	w http.ResponseWriter,
	r *http.Request,
	needPeriod bool,
) (domain.ScenarioInput, bool) {

	var input domain.ScenarioInput

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return input, false
	}
	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return input, false
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return input, false
	}

	if input.ExpectedAnnualReturnRate == 0 && input.RiskAppetite != "" {
		rate, ok := domain.RiskAppetiteReturns[input.RiskAppetite]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown risk appetite: must be low, moderate or high")
			return input, false
		}
		input.ExpectedAnnualReturnRate = rate
	}

	if input.LoanAmount <= 0 || input.LoanAmount > service.MaxLoanAmount {
		writeError(w, http.StatusBadRequest, "loan amount must be a positive number within limits")
		return input, false
	}
	if input.MonthlyBudget <= 0 || input.MonthlyBudget > service.MaxMonthlyBudget {
		writeError(w, http.StatusBadRequest, "monthly budget must be a positive number within limits")
		return input, false
	}
	if needPeriod && (input.OptimizationPeriodYears < 1 || input.OptimizationPeriodYears > service.MaxOptimizationYears) {
		writeError(w, http.StatusBadRequest, "optimization period must be a positive number of years")
		return input, false
	}

	return input, true
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{
		Status:  domain.StatusError,
		Message: message,
	})
}

// respond encodes into a buffer first so no header is written if encoding fails.
func respond(w http.ResponseWriter, result any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		log.Printf("Error encoding response: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
