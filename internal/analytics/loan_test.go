package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateLoanApproves(t *testing.T) {
	t.Parallel()

	got := EvaluateLoan(LoanRequest{
		MonthlyIncome:   dec("5000.00"),
		CreditScore:     750,
		DurationMonths:  24,
		AmountRequested: dec("10000.00"),
		Purpose:         "Auto",
		AverageBalance:  dec("10000.00"),
		GoalStreak:      6,
	})

	require.True(t, got.Approved)
	require.Empty(t, got.Reason)
	require.Equal(t, 0.12, got.APR)
	require.Equal(t, 0.67, got.Score)
	require.True(t, got.MonthlyPayment.GreaterThan(dec("400")))
	require.True(t, got.MonthlyPayment.LessThan(dec("500")))
	require.True(t, got.TotalPayment.GreaterThan(dec("10000")))
	require.Less(t, got.DTI, 0.45)
}

func TestEvaluateLoanRejectsLowScore(t *testing.T) {
	t.Parallel()

	got := EvaluateLoan(LoanRequest{
		MonthlyIncome:   dec("2000.00"),
		CreditScore:     400,
		DurationMonths:  12,
		AmountRequested: dec("10000.00"),
		Purpose:         "Personal",
	})

	require.False(t, got.Approved)
	require.Equal(t, "financial score too low for approval", got.Reason)
	require.Zero(t, got.APR)
}

func TestEvaluateLoanRejectsPaymentOverIncome(t *testing.T) {
	t.Parallel()

	got := EvaluateLoan(LoanRequest{
		MonthlyIncome:   dec("100.00"),
		CreditScore:     850,
		DurationMonths:  12,
		AmountRequested: dec("100000.00"),
		Purpose:         "Home",
		AverageBalance:  dec("1000000.00"),
		GoalStreak:      6,
	})

	require.False(t, got.Approved)
	require.Equal(t, "requested monthly payment exceeds income", got.Reason)
	require.Greater(t, got.DTI, 1.0)
}

func TestEvaluateLoanRejectsHighDTIWithWeakScore(t *testing.T) {
	t.Parallel()

	got := EvaluateLoan(LoanRequest{
		MonthlyIncome:   dec("1000.00"),
		CreditScore:     700,
		DurationMonths:  24,
		AmountRequested: dec("20000.00"),
		Purpose:         "Auto",
		AverageBalance:  dec("3000.00"),
	})

	require.False(t, got.Approved)
	require.Contains(t, got.Reason, "debt-to-income")
	require.Greater(t, got.DTI, 0.45)
}

func TestEvaluateLoanInputGuards(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		req    LoanRequest
		reason string
	}{
		{"zero income", LoanRequest{AmountRequested: dec("100"), DurationMonths: 12}, "income must be greater than zero"},
		{"zero amount", LoanRequest{MonthlyIncome: dec("1000"), DurationMonths: 12}, "loan amount must be positive"},
		{"zero duration", LoanRequest{MonthlyIncome: dec("1000"), AmountRequested: dec("100")}, "duration must be at least 1 month"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := EvaluateLoan(tc.req)
			require.False(t, got.Approved)
			require.Equal(t, tc.reason, got.Reason)
		})
	}
}

func TestEvaluateLoanUnknownPurposeUsesHighestRisk(t *testing.T) {
	t.Parallel()

	base := LoanRequest{
		MonthlyIncome:   dec("5000.00"),
		CreditScore:     800,
		DurationMonths:  12,
		AmountRequested: dec("5000.00"),
		AverageBalance:  dec("15000.00"),
		GoalStreak:      6,
	}
	personal := base
	personal.Purpose = "Personal"
	unknown := base
	unknown.Purpose = "Yacht"

	require.Equal(t, EvaluateLoan(personal).Score, EvaluateLoan(unknown).Score)
}
