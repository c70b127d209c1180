package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// LoanRequest carries the applicant data a loan evaluation needs. All
// inputs are local ledger-derived figures; no external bureau calls.
type LoanRequest struct {
	MonthlyIncome   decimal.Decimal
	CreditScore     int
	DurationMonths  int
	AmountRequested decimal.Decimal
	Purpose         string
	AverageBalance  decimal.Decimal
	GoalStreak      int // consecutive months meeting the savings goal
}

// LoanDecision is the outcome of a loan evaluation. Monetary fields
// are rounded to cents; Score and DTI are diagnostic ratios.
type LoanDecision struct {
	Approved       bool
	Reason         string
	Score          float64
	APR            float64
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	DTI            float64
}

var loanPurposeWeights = map[string]float64{
	"Auto":               0.10,
	"Home":               0.15,
	"Education":          0.20,
	"Medical":            0.25,
	"Business":           0.30,
	"Debt Consolidation": 0.35,
	"Personal":           0.40,
}

// EvaluateLoan scores an application from income, credit score,
// balance history and goal-streak performance, then prices an
// amortized payment at the tiered APR. The risk ratios are plain
// floats; only the payment amounts are money.
func EvaluateLoan(req LoanRequest) LoanDecision {
	if req.MonthlyIncome.Sign() <= 0 {
		return LoanDecision{Reason: "income must be greater than zero"}
	}
	if req.AmountRequested.Sign() <= 0 {
		return LoanDecision{Reason: "loan amount must be positive"}
	}
	if req.DurationMonths <= 0 {
		return LoanDecision{Reason: "duration must be at least 1 month"}
	}

	riskWeight, ok := loanPurposeWeights[req.Purpose]
	if !ok {
		riskWeight = 0.40
	}

	income, _ := req.MonthlyIncome.Float64()
	amount, _ := req.AmountRequested.Float64()
	balance, _ := req.AverageBalance.Float64()

	balanceFactor := clamp01(balance / (income * 3))
	goalFactor := clamp01(float64(req.GoalStreak) / 6)
	creditFactor := clamp01(float64(req.CreditScore) / 850)
	burdenFactor := math.Min(income/(amount*5), 1.0)

	score := 0.45*creditFactor + 0.20*balanceFactor + 0.15*goalFactor + 0.20*burdenFactor
	score = math.Max(score-riskWeight*0.3, 0)

	var apr float64
	switch {
	case score >= 0.70:
		apr = 0.07
	case score >= 0.55:
		apr = 0.12
	case score >= 0.40:
		apr = 0.18
	default:
		return LoanDecision{
			Score:  round3(score),
			Reason: "financial score too low for approval",
		}
	}

	monthlyRate := apr / 12
	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = amount / float64(req.DurationMonths)
	} else {
		denom := 1 - math.Pow(1+monthlyRate, -float64(req.DurationMonths))
		if denom == 0 {
			monthlyPayment = amount / float64(req.DurationMonths)
		} else {
			monthlyPayment = monthlyRate * amount / denom
		}
	}
	totalPayment := monthlyPayment * float64(req.DurationMonths)
	dti := monthlyPayment / income

	if dti > 1.0 {
		return LoanDecision{
			Reason: "requested monthly payment exceeds income",
			Score:  round3(score),
			DTI:    round4(dti),
		}
	}
	if dti > 0.45 && score < 0.55 {
		return LoanDecision{
			Reason: "debt-to-income ratio too high for current financial profile",
			Score:  round3(score),
			DTI:    round4(dti),
		}
	}

	return LoanDecision{
		Approved:       true,
		Score:          round3(score),
		APR:            apr,
		MonthlyPayment: decimal.NewFromFloat(monthlyPayment).Round(2),
		TotalPayment:   decimal.NewFromFloat(totalPayment).Round(2),
		DTI:            round4(dti),
	}
}

func clamp01(v float64) float64 { return math.Max(math.Min(v, 1), 0) }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
