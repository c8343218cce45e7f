package core

import "github.com/shopspring/decimal"

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthOverview is a compact spending summary for a specific year+month.
type MonthOverview struct {
	Year       int
	Month      int // 1-12
	Total      Money
	ByCategory []CategoryAmount
}

// GoalProgress pairs a goal with its completion percentage (0-100).
type GoalProgress struct {
	Goal    Goal
	Percent int
}

// NetWorth summarizes the owner's balance sheet. Portfolio is the market
// value of all investments; assets and liabilities are manual entries.
type NetWorth struct {
	Assets      Money
	Liabilities Money
	Portfolio   decimal.Decimal
}

// Progress computes the completion percentage of a goal, clamped to 0-100.
func Progress(g Goal) int {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	pct := int((g.CurrentAmount.Cents*100 + g.TargetAmount.Cents/2) / g.TargetAmount.Cents)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
