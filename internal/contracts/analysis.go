package contracts

import "fmt"

// Strategy selects which checklist to evaluate.
type Strategy string

const (
	StrategyDefensive    Strategy = "defensive"
	StrategyEnterprising Strategy = "enterprising"
	StrategyBuffett      Strategy = "buffett"
)

// ParseStrategy converts a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyDefensive, StrategyEnterprising, StrategyBuffett:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy: %q (valid: defensive, enterprising, buffett)", s)
	}
}

// CriterionCount returns the fixed checklist length for a strategy.
func (s Strategy) CriterionCount() int {
	switch s {
	case StrategyDefensive:
		return 7
	case StrategyEnterprising:
		return 6
	case StrategyBuffett:
		return 10
	default:
		return 0
	}
}

// CriteriaResult is the outcome of a single checklist item. Created by
// the analysis engine, never mutated afterwards.
type CriteriaResult struct {
	Name          string `json:"name"`
	Passed        bool   `json:"passed"`
	ActualValue   string `json:"actual_value"`
	RequiredValue string `json:"required_value"`
	Explanation   string `json:"explanation"`
}

// AnalysisResult aggregates all criteria outcomes for one ticker.
// Invariants: TotalCount equals the fixed criterion count for the
// strategy, CriteriaResults keeps checklist order, and
// PassedCount <= TotalCount.
type AnalysisResult struct {
	Ticker          string           `json:"ticker"`
	CompanyName     string           `json:"company_name"`
	Strategy        Strategy         `json:"strategy"`
	CriteriaResults []CriteriaResult `json:"criteria_results"`
	PassedCount     int              `json:"passed_count"`
	TotalCount      int              `json:"total_count"`
	ScorePercentage float64          `json:"score_percentage"`
	Recommendation  string           `json:"recommendation"`
}

// Failed returns the criteria that did not pass, in checklist order.
func (r *AnalysisResult) Failed() []CriteriaResult {
	failed := make([]CriteriaResult, 0)
	for _, c := range r.CriteriaResults {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Passed returns the criteria that passed, in checklist order.
func (r *AnalysisResult) Passed() []CriteriaResult {
	passed := make([]CriteriaResult, 0)
	for _, c := range r.CriteriaResults {
		if c.Passed {
			passed = append(passed, c)
		}
	}
	return passed
}
