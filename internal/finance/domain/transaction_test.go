package domain

import (
	"testing"
	"time"

	financeErrors "github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/errors"
	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "t-1",
		UserID:      "u-1",
		Amount:      49.99,
		Type:        TypeExpense,
		Category:    "Food",
		Description: "Groceries",
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidate_ValidTransaction(t *testing.T) {
	transaction := validTransaction()
	assert.NoError(t, transaction.Validate())
}

func TestValidate_CollectsAllFieldErrors(t *testing.T) {
	transaction := Transaction{
		Amount:   -5,
		Type:     "transfer",
		Category: "",
	}

	err := transaction.Validate()
	assert.Error(t, err)
	assert.True(t, financeErrors.IsValidationErrors(err))

	var validationErrors *financeErrors.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)
	assert.Equal(t, []string{
		"Amount must be a positive number",
		"Type must be either income or expense",
		"Category is required",
		"Date must be a valid date",
	}, validationErrors.Messages())
}

func TestValidate_SingleFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		message string
	}{
		{
			name:    "zero amount",
			mutate:  func(tr *Transaction) { tr.Amount = 0 },
			message: "Amount must be a positive number",
		},
		{
			name:    "unknown type",
			mutate:  func(tr *Transaction) { tr.Type = "savings" },
			message: "Type must be either income or expense",
		},
		{
			name:    "missing category",
			mutate:  func(tr *Transaction) { tr.Category = "" },
			message: "Category is required",
		},
		{
			name:    "zero date",
			mutate:  func(tr *Transaction) { tr.Date = time.Time{} },
			message: "Date must be a valid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transaction := validTransaction()
			tt.mutate(&transaction)

			err := transaction.Validate()
			assert.Error(t, err)

			var validationErrors *financeErrors.ValidationErrors
			assert.ErrorAs(t, err, &validationErrors)
			assert.Equal(t, []string{tt.message}, validationErrors.Messages())
		})
	}
}

func TestApplyUpdate_KeepsIdentityFields(t *testing.T) {
	transaction := validTransaction()
	transaction.ApplyUpdate(Transaction{
		ID:          "someone-elses-id",
		UserID:      "someone-else",
		Amount:      120,
		Type:        TypeIncome,
		Category:    "Salary",
		Description: "Paycheck",
		Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "t-1", transaction.ID)
	assert.Equal(t, "u-1", transaction.UserID)
	assert.Equal(t, 120.0, transaction.Amount)
	assert.Equal(t, TypeIncome, transaction.Type)
	assert.Equal(t, "Salary", transaction.Category)
}

func TestRoundToTwoDecimalPlaces(t *testing.T) {
	transaction := validTransaction()
	transaction.Amount = 10.007
	transaction.RoundToTwoDecimalPlaces()
	assert.Equal(t, 10.01, transaction.Amount)
}
