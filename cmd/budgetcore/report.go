package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/analytics"
	"github.com/lushenghe96vt/budgetcore/internal/config"
	"github.com/lushenghe96vt/budgetcore/internal/ledger"
	"github.com/lushenghe96vt/budgetcore/internal/subscription"
)

// Catppuccin Mocha accents.
const (
	colorGreen  lipgloss.Color = "#a6e3a1"
	colorRed    lipgloss.Color = "#f38ba8"
	colorYellow lipgloss.Color = "#f9e2af"
	colorTeal   lipgloss.Color = "#94e2d5"
	colorText   lipgloss.Color = "#cdd6f4"
	colorMuted  lipgloss.Color = "#6c7086"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	goodStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle     = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

func printReport(w io.Writer, cfg config.Config, txns []*ledger.Transaction, filter analytics.Filter, loc *time.Location) error {
	period := filter.Apply(txns)
	summary := analytics.SummarizePeriod(txns, filter)

	var b strings.Builder

	b.WriteString(headingStyle.Render(summary.Period) + "\n")
	writeKV(&b, "Transactions", fmt.Sprintf("%d across %d categories", summary.TransactionCount, summary.CategoryCount))
	writeKV(&b, "Income", goodStyle.Render(money(summary.TotalIncome)))
	writeKV(&b, "Spending", badStyle.Render(money(summary.TotalSpending)))
	netStyle := goodStyle
	if summary.NetBalance.Sign() < 0 {
		netStyle = badStyle
	}
	writeKV(&b, "Net", netStyle.Render(money(summary.NetBalance)))

	if rows := analytics.SpendingSummary(period); len(rows) > 0 {
		b.WriteString("\n" + headingStyle.Render("Spending by category") + "\n")
		for _, row := range rows {
			line := fmt.Sprintf("%-24s %12s  %5s%%",
				row.Category, money(row.Amount), row.Percent.StringFixed(1))
			b.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	if subs := subscription.Summarize(period); subs.Count > 0 {
		b.WriteString("\n" + headingStyle.Render("Subscriptions") + "\n")
		writeKV(&b, "Charges", fmt.Sprintf("%d", subs.Count))
		writeKV(&b, "Total", money(subs.Total))
		writeKV(&b, "Average", money(subs.Average))
	}

	now := time.Now().In(loc)
	if upcoming := subscription.NextDueWithin(txns, now, 30*24*time.Hour); len(upcoming) > 0 {
		b.WriteString("\n" + headingStyle.Render("Upcoming renewals") + "\n")
		for _, s := range upcoming {
			line := fmt.Sprintf("%-24s %12s  due %s",
				s.Description, money(s.Amount.Abs()), s.NextDueDate.In(loc).Format("02 Jan 2006"))
			b.WriteString("  " + warnStyle.Render(line) + "\n")
		}
	}

	if trends := analytics.MonthlyTrends(txns); len(trends) > 1 {
		b.WriteString("\n" + headingStyle.Render("Monthly trend") + "\n")
		for _, tr := range trends {
			line := fmt.Sprintf("%s  in %12s  out %12s  net %12s",
				tr.Month, money(tr.Income), money(tr.Spending), money(tr.Net))
			b.WriteString("  " + valueStyle.Render(line) + "\n")
		}
		fc := analytics.ForecastSpending(txns, cfg.Budget.ForecastLookback)
		writeKV(&b, "Forecast next month", money(fc.NextMonth))
	}

	if err := writeBudgetSection(&b, cfg.Budget, period, txns); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBudgetSection(b *strings.Builder, budget config.BudgetConfig, period, all []*ledger.Transaction) error {
	limit, err := budget.ParseSpendingLimit()
	if err != nil {
		return err
	}
	goal, err := budget.ParseSavingsGoal()
	if err != nil {
		return err
	}
	catLimits, err := budget.ParseCategoryLimits()
	if err != nil {
		return err
	}
	if limit == nil && goal == nil && len(catLimits) == 0 {
		return nil
	}

	b.WriteString("\n" + headingStyle.Render("Budget") + "\n")

	if limit != nil {
		ls := analytics.CheckSpendingLimit(period, limit)
		style := goodStyle
		if ls.OverLimit {
			style = badStyle
		} else if ls.UsedPercent >= 80 {
			style = warnStyle
		}
		writeKV(b, "Spending limit", style.Render(fmt.Sprintf("%s of %s (%d%%)",
			money(ls.Spent), money(*ls.Limit), ls.UsedPercent)))
	}

	for _, cl := range analytics.PerCategoryLimits(period, catLimits) {
		style := goodStyle
		if cl.OverLimit {
			style = badStyle
		} else if cl.UsedPercent >= 80 {
			style = warnStyle
		}
		writeKV(b, cl.Category, style.Render(fmt.Sprintf("%s of %s (%d%%)",
			money(cl.Spent), money(cl.Limit), cl.UsedPercent)))
	}

	if goal != nil {
		gs := analytics.CheckSavingsGoal(period, goal)
		style := warnStyle
		if gs.MetGoal {
			style = goodStyle
		}
		writeKV(b, "Savings goal", style.Render(fmt.Sprintf("%s of %s (%d%%)",
			money(gs.Saved), money(*gs.Goal), gs.ProgressPercent)))
		if streak := analytics.GoalStreak(all, goal); streak > 0 {
			writeKV(b, "Goal streak", fmt.Sprintf("%d month(s)", streak))
		}
	}
	return nil
}

func writeKV(b *strings.Builder, label, value string) {
	b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-22s", label)) + " " + value + "\n")
}

func money(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
