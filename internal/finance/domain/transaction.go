package domain

import (
	"math"
	"time"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	maxDescriptionLength = 200
)

// TransactionRepository is the storage contract for owner-scoped transactions.
// Every lookup and mutation is keyed by record id plus owner id, so a record
// belonging to another owner behaves exactly like a missing one.
type TransactionRepository interface {
	Save(transaction Transaction) error
	FindPage(filter Filter) ([]Transaction, int, error)
	FindByID(userID, transactionID string) (*Transaction, error)
	Update(transaction Transaction) error
	Delete(userID, transactionID string) error
}

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // "income" or "expense"
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TypeIncome || transactionType == TypeExpense
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}

// Validate collects one message per failing field.
func (t *Transaction) Validate() error {
	validationErrors := &errors.ValidationErrors{}
	if t.Amount <= 0 {
		validationErrors.Add(errors.NewValidationError("Amount must be a positive number"))
	}
	if !IsValidTransactionType(t.Type) {
		validationErrors.Add(errors.NewValidationError("Type must be either income or expense"))
	}
	if t.Category == "" {
		validationErrors.Add(errors.NewValidationError("Category is required"))
	}
	if len(t.Description) > maxDescriptionLength {
		validationErrors.Add(errors.NewValidationError("Description must be of length less than 200"))
	}
	if t.Date.IsZero() {
		validationErrors.Add(errors.NewValidationError("Date must be a valid date"))
	}
	if len(validationErrors.Errors) > 0 {
		return validationErrors
	}
	return nil
}

// ApplyUpdate replaces the mutable fields only; id and owner never change.
func (t *Transaction) ApplyUpdate(update Transaction) {
	t.Amount = update.Amount
	t.Type = update.Type
	t.Category = update.Category
	t.Description = update.Description
	t.Date = update.Date
}
