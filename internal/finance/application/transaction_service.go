package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
)

// Pagination describes the window of a list response. TotalPages is computed
// from a full count of matching records on every call.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

type TransactionService struct {
	repo domain.TransactionRepository
	now  func() time.Time
}

func NewTransactionService(repo domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateTransaction persists a new transaction for its owner. The id is
// always assigned here; whatever the caller put in that field is discarded.
func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*transaction)
}

func (s *TransactionService) ListTransactions(userID string, query domain.ListQuery) ([]domain.Transaction, Pagination, error) {
	query.Normalize()
	filter := query.BuildFilter(userID, s.now())

	transactions, total, err := s.repo.FindPage(filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + query.Limit - 1) / query.Limit
	pagination := Pagination{
		CurrentPage:  query.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: query.Limit,
	}
	return transactions, pagination, nil
}

func (s *TransactionService) GetTransaction(userID, transactionID string) (*domain.Transaction, error) {
	return s.repo.FindByID(userID, transactionID)
}

// UpdateTransaction re-validates and replaces the mutable fields of the
// record matching id and owner.
func (s *TransactionService) UpdateTransaction(userID, transactionID string, update domain.Transaction) (*domain.Transaction, error) {
	transaction := domain.Transaction{
		ID:     transactionID,
		UserID: userID,
	}
	transaction.ApplyUpdate(update)
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *TransactionService) DeleteTransaction(userID, transactionID string) error {
	return s.repo.Delete(userID, transactionID)
}
