package client

import (
	"sort"
	"time"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
)

// The reducers below operate on exactly the slice handed to them, which in
// practice is one fetched page. Totals therefore cover only that page, not
// the full filtered result set; this mirrors the original client.

type Stats struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

func Summarize(transactions []domain.Transaction) Stats {
	var stats Stats
	for _, transaction := range transactions {
		switch transaction.Type {
		case domain.TypeIncome:
			stats.TotalIncome += transaction.Amount
		case domain.TypeExpense:
			stats.TotalExpense += transaction.Amount
		}
	}
	stats.Balance = stats.TotalIncome - stats.TotalExpense
	return stats
}

// ExpensesByCategory sums expense amounts per category. Income records are
// ignored, matching the original category chart.
func ExpensesByCategory(transactions []domain.Transaction) map[string]float64 {
	byCategory := make(map[string]float64)
	for _, transaction := range transactions {
		if transaction.Type != domain.TypeExpense {
			continue
		}
		byCategory[transaction.Category] += transaction.Amount
	}
	return byCategory
}

type MonthlyPoint struct {
	Year    int
	Month   time.Month
	Income  float64
	Expense float64
}

// MonthlyTrend groups income and expense sums by calendar month, ascending,
// ready for chart rendering.
func MonthlyTrend(transactions []domain.Transaction) []MonthlyPoint {
	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey]*MonthlyPoint)
	for _, transaction := range transactions {
		key := monthKey{year: transaction.Date.Year(), month: transaction.Date.Month()}
		point, exists := byMonth[key]
		if !exists {
			point = &MonthlyPoint{Year: key.year, Month: key.month}
			byMonth[key] = point
		}
		switch transaction.Type {
		case domain.TypeIncome:
			point.Income += transaction.Amount
		case domain.TypeExpense:
			point.Expense += transaction.Amount
		}
	}

	points := make([]MonthlyPoint, 0, len(byMonth))
	for _, point := range byMonth {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	return points
}
