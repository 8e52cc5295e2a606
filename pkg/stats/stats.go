package stats

import (
	"time"
)

// CategoryUsage is one line of a budget usage report.
type CategoryUsage struct {
	CategoryId    int
	CategoryName  string
	GroupId       *int
	GroupName     string
	TimeAllocated time.Duration
	TimeUsed      time.Duration
	// Remaining is negative when the category is overspent.
	Remaining time.Duration
}

type UsageSummary struct {
	BudgetId       int
	Categories     []CategoryUsage
	TotalAllocated time.Duration
	TotalUsed      time.Duration
	TotalRemaining time.Duration
}
