package interfaces

import (
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/application"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
)

type MockTransactionService struct {
	CreateFunc func(transaction *domain.Transaction) error
	ListFunc   func(userID string, query domain.ListQuery) ([]domain.Transaction, application.Pagination, error)
	GetFunc    func(userID, transactionID string) (*domain.Transaction, error)
	UpdateFunc func(userID, transactionID string, update domain.Transaction) (*domain.Transaction, error)
	DeleteFunc func(userID, transactionID string) error

	CreatedTransaction *domain.Transaction
	ListedQuery        domain.ListQuery
	ListedUserID       string
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	m.CreatedTransaction = transaction
	if m.CreateFunc != nil {
		return m.CreateFunc(transaction)
	}
	return transaction.Validate()
}

func (m *MockTransactionService) ListTransactions(userID string, query domain.ListQuery) ([]domain.Transaction, application.Pagination, error) {
	m.ListedUserID = userID
	m.ListedQuery = query
	if m.ListFunc != nil {
		return m.ListFunc(userID, query)
	}
	return []domain.Transaction{}, application.Pagination{CurrentPage: 1, ItemsPerPage: 10}, nil
}

func (m *MockTransactionService) GetTransaction(userID, transactionID string) (*domain.Transaction, error) {
	if m.GetFunc != nil {
		return m.GetFunc(userID, transactionID)
	}
	return nil, nil
}

func (m *MockTransactionService) UpdateTransaction(userID, transactionID string, update domain.Transaction) (*domain.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(userID, transactionID, update)
	}
	return &update, nil
}

func (m *MockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(userID, transactionID)
	}
	return nil
}
