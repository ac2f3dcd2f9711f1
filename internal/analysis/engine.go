package analysis

import (
	"github.com/quantlab/graham/internal/contracts"
	"github.com/quantlab/graham/pkg/logger"
)

// Recommendation bands, applied to the score percentage. The exact
// boundaries are a policy choice; they live here as named constants so
// they can be tested and tuned in one place.
const (
	grahamStrongBuyScore = 85.0
	grahamBuyScore       = 70.0
	grahamHoldScore      = 50.0
	grahamCautionScore   = 30.0

	buffettStrongBuyScore = 80.0
	buffettBuyScore       = 65.0
	buffettWatchScore     = 50.0
	buffettCautionScore   = 35.0
)

// insufficientData is the actual_value reported when a criterion
// cannot be evaluated because a required input is absent.
const insufficientData = "insufficient data"

// Engine evaluates a financial snapshot against an investor checklist.
// Evaluation is pure and total: any syntactically valid FinancialData,
// including one with every field missing, produces a full result and
// never an error.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new criteria engine.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		logger: log.WithField("module", "analysis"),
	}
}

// Evaluate runs the fixed checklist for the strategy against the
// snapshot. Criteria are independent and evaluated in checklist order;
// a missing input fails that single criterion, never the evaluation.
func (e *Engine) Evaluate(data *contracts.FinancialData, strategy contracts.Strategy) *contracts.AnalysisResult {
	var criteria []contracts.CriteriaResult

	switch strategy {
	case contracts.StrategyEnterprising:
		criteria = e.evaluateEnterprising(data)
	case contracts.StrategyBuffett:
		criteria = e.evaluateBuffett(data)
	default:
		strategy = contracts.StrategyDefensive
		criteria = e.evaluateDefensive(data)
	}

	passed := 0
	for _, c := range criteria {
		if c.Passed {
			passed++
		}
	}

	// Score is always computed over the full fixed checklist length,
	// never a partial denominator from criteria that lacked data.
	total := len(criteria)
	score := 0.0
	if total > 0 {
		score = float64(passed) / float64(total) * 100
	}

	result := &contracts.AnalysisResult{
		Ticker:          data.Ticker,
		CompanyName:     data.CompanyName,
		Strategy:        strategy,
		CriteriaResults: criteria,
		PassedCount:     passed,
		TotalCount:      total,
		ScorePercentage: score,
		Recommendation:  recommend(strategy, score),
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":   data.Ticker,
		"strategy": string(strategy),
		"passed":   passed,
		"total":    total,
		"score":    score,
	}).Debug("Checklist evaluated")

	return result
}

// recommend maps a score to a fixed recommendation label.
func recommend(strategy contracts.Strategy, score float64) string {
	if strategy == contracts.StrategyBuffett {
		switch {
		case score >= buffettStrongBuyScore:
			return "STRONG BUY - Exceptional Buffett-style investment"
		case score >= buffettBuyScore:
			return "BUY - Solid business with competitive moat"
		case score >= buffettWatchScore:
			return "WATCH - Some quality characteristics, needs monitoring"
		case score >= buffettCautionScore:
			return "CAUTION - Missing key Buffett criteria"
		default:
			return "PASS - Does not meet Buffett's quality standards"
		}
	}

	switch {
	case score >= grahamStrongBuyScore:
		return "STRONG BUY - Meets nearly all Graham criteria"
	case score >= grahamBuyScore:
		return "BUY - Meets most Graham criteria with minor concerns"
	case score >= grahamHoldScore:
		return "HOLD - Mixed results, requires further analysis"
	case score >= grahamCautionScore:
		return "CAUTION - Fails multiple key criteria"
	default:
		return "AVOID - Does not meet Graham's safety standards"
	}
}

// value unwraps a nullable field.
func value(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// mean returns the arithmetic mean of vals; zero for an empty slice.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
