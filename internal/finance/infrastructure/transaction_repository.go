package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
	financeErrors "github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions (id, user_id, amount, type, category, description, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transaction.ID, transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Category, transaction.Description, transaction.Date,
	)
	return err
}

// buildWhere assembles the WHERE clause for a filter. The owner predicate is
// always first; everything else is conjoined onto it.
func buildWhere(filter domain.Filter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(description ILIKE $%d OR category ILIKE $%d)", len(args), len(args)))
	}
	if filter.HasDates {
		args = append(args, filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
		args = append(args, filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// FindPage returns one page of matching transactions plus the full count of
// all records matching the filter, ignoring the pagination window.
func (r *TransactionRepository) FindPage(filter domain.Filter) ([]domain.Transaction, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions WHERE " + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, filter.Limit, filter.Offset)
	pageQuery := fmt.Sprintf(
		`SELECT id, user_id, amount, type, category, description, date
        FROM transactions WHERE %s
        ORDER BY date DESC, id ASC
        LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	rows, err := r.db.Query(pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount,
			&transaction.Type, &transaction.Category, &transaction.Description, &transaction.Date); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func (r *TransactionRepository) FindByID(userID, transactionID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := r.db.QueryRow(
		`SELECT id, user_id, amount, type, category, description, date
        FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	).Scan(&transaction.ID, &transaction.UserID, &transaction.Amount,
		&transaction.Type, &transaction.Category, &transaction.Description, &transaction.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	result, err := r.db.Exec(
		`UPDATE transactions
        SET amount = $1, type = $2, category = $3, description = $4, date = $5
        WHERE id = $6 AND user_id = $7`,
		transaction.Amount, transaction.Type, transaction.Category,
		transaction.Description, transaction.Date, transaction.ID, transaction.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(userID, transactionID string) error {
	result, err := r.db.Exec(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}
