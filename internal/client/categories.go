package client

import "github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"

var incomeCategories = []string{"Salary", "Freelance", "Business", "Investment", "Other"}
var expenseCategories = []string{"Food", "Transport", "Entertainment", "Bills", "Shopping", "Health", "Other"}

// SuggestedCategories returns the conventional category set for a transaction
// type. Categories are free-form server-side; these are only the suggestions
// the transaction form offers.
func SuggestedCategories(transactionType string) []string {
	switch transactionType {
	case domain.TypeIncome:
		return append([]string(nil), incomeCategories...)
	case domain.TypeExpense:
		return append([]string(nil), expenseCategories...)
	default:
		return nil
	}
}
