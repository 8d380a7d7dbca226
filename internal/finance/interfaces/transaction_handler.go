package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/application"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
	financeErrors "github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/errors"
	"github.com/sirupsen/logrus"
)

type TransactionServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	ListTransactions(userID string, query domain.ListQuery) ([]domain.Transaction, application.Pagination, error)
	GetTransaction(userID, transactionID string) (*domain.Transaction, error)
	UpdateTransaction(userID, transactionID string, update domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	log          *logrus.Logger
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	logger *logrus.Logger,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransactionHandler {
	if service == nil {
		logrus.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		logrus.Fatal("Responder functions must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		log:          logger,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// transactionPayload is the accepted request body for create and update.
// Owner and id are never read from the payload.
type transactionPayload struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// parseDate accepts a plain calendar date or a full timestamp. A zero time
// marks the field invalid for validation.
func parseDate(value string) time.Time {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return time.Time{}
}

func (p transactionPayload) toTransaction() domain.Transaction {
	return domain.Transaction{
		Amount:      p.Amount,
		Type:        p.Type,
		Category:    p.Category,
		Description: p.Description,
		Date:        parseDate(p.Date),
	}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction := payload.toTransaction()
	transaction.UserID = userID
	if err := h.service.CreateTransaction(&transaction); err != nil {
		if h.respondValidationError(w, err) {
			return
		}
		h.log.WithError(err).Error("Error creating transaction")
		h.respondError(w, http.StatusInternalServerError, "Server error while creating transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"message":     "Transaction created successfully",
		"transaction": transaction,
	})
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := domain.ListQuery{
		Search:    r.URL.Query().Get("search"),
		Type:      r.URL.Query().Get("type"),
		Category:  r.URL.Query().Get("category"),
		TimeRange: r.URL.Query().Get("timeRange"),
	}

	pageStr := r.URL.Query().Get("page")
	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid page value")
			return
		}
		query.Page = page
	}

	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid limit value")
			return
		}
		query.Limit = limit
	}

	transactions, pagination, err := h.service.ListTransactions(userID, query)
	if err != nil {
		h.log.WithError(err).Error("Error fetching transactions")
		h.respondError(w, http.StatusInternalServerError, "Server error while fetching transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"transactions": transactions,
		"pagination":   pagination,
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transaction, err := h.service.GetTransaction(userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, financeErrors.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.WithError(err).Error("Error fetching transaction")
		h.respondError(w, http.StatusInternalServerError, "Server error while fetching transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"transaction": transaction,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.service.UpdateTransaction(userID, r.PathValue("id"), payload.toTransaction())
	if err != nil {
		if h.respondValidationError(w, err) {
			return
		}
		if errors.Is(err, financeErrors.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.WithError(err).Error("Error updating transaction")
		h.respondError(w, http.StatusInternalServerError, "Server error while updating transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Transaction updated successfully",
		"transaction": transaction,
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteTransaction(userID, r.PathValue("id")); err != nil {
		if errors.Is(err, financeErrors.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.WithError(err).Error("Error deleting transaction")
		h.respondError(w, http.StatusInternalServerError, "Server error while deleting transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Transaction deleted successfully",
	})
}

// respondValidationError translates validation failures into a 400 with the
// per-field message list. Reports whether it handled the error.
func (h *TransactionHandler) respondValidationError(w http.ResponseWriter, err error) bool {
	if financeErrors.IsValidationErrors(err) {
		var validationErrors *financeErrors.ValidationErrors
		errors.As(err, &validationErrors)
		h.respondError(w, http.StatusBadRequest, "Validation failed", validationErrors.Messages())
		return true
	}
	if financeErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}
