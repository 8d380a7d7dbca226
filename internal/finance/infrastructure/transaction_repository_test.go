package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/domain"
	financeErrors "github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/errors"
)

const testSchema = `
CREATE TABLE transactions (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    type VARCHAR(10) NOT NULL,
    category VARCHAR(100) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const (
	ownerA = "7f8c9f14-0e68-4a3c-9a41-111111111111"
	ownerB = "7f8c9f14-0e68-4a3c-9a41-222222222222"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finance_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func seed(t *testing.T, repo *TransactionRepository, transactions []domain.Transaction) {
	t.Helper()
	for _, transaction := range transactions {
		require.NoError(t, repo.Save(transaction))
	}
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)

	seed(t, repo, []domain.Transaction{
		{ID: "00000000-0000-0000-0000-000000000001", UserID: ownerA, Amount: 120.50, Type: "expense", Category: "Food", Description: "Weekly groceries", Date: testDate(2024, 1, 10)},
		{ID: "00000000-0000-0000-0000-000000000002", UserID: ownerA, Amount: 3000, Type: "income", Category: "Salary", Description: "January paycheck", Date: testDate(2024, 1, 31)},
		{ID: "00000000-0000-0000-0000-000000000003", UserID: ownerA, Amount: 45, Type: "expense", Category: "Transport", Description: "Bus pass", Date: testDate(2023, 11, 20)},
		{ID: "00000000-0000-0000-0000-000000000004", UserID: ownerA, Amount: 18, Type: "expense", Category: "Food", Description: "Lunch", Date: testDate(2024, 1, 10)},
		{ID: "00000000-0000-0000-0000-000000000005", UserID: ownerB, Amount: 99, Type: "expense", Category: "Food", Description: "Not owner A's record", Date: testDate(2024, 1, 12)},
	})

	t.Run("scopes every page to the owner", func(t *testing.T) {
		transactions, total, err := repo.FindPage(domain.Filter{UserID: ownerA, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		for _, transaction := range transactions {
			assert.Equal(t, ownerA, transaction.UserID)
		}
	})

	t.Run("orders by date descending with id tiebreak", func(t *testing.T) {
		transactions, _, err := repo.FindPage(domain.Filter{UserID: ownerA, Limit: 10})
		require.NoError(t, err)
		require.Len(t, transactions, 4)
		assert.Equal(t, "00000000-0000-0000-0000-000000000002", transactions[0].ID)
		assert.Equal(t, "00000000-0000-0000-0000-000000000001", transactions[1].ID)
		assert.Equal(t, "00000000-0000-0000-0000-000000000004", transactions[2].ID)
		assert.Equal(t, "00000000-0000-0000-0000-000000000003", transactions[3].ID)
	})

	t.Run("search matches description or category case-insensitively", func(t *testing.T) {
		transactions, total, err := repo.FindPage(domain.Filter{UserID: ownerA, Search: "GROCER", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, transactions, 1)
		assert.Equal(t, "Weekly groceries", transactions[0].Description)

		_, total, err = repo.FindPage(domain.Filter{UserID: ownerA, Search: "foo", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total) // both Food records, via category
	})

	t.Run("filters by type and category", func(t *testing.T) {
		_, total, err := repo.FindPage(domain.Filter{UserID: ownerA, Type: "expense", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		_, total, err = repo.FindPage(domain.Filter{UserID: ownerA, Category: "Food", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("restricts dates when the filter carries a window", func(t *testing.T) {
		transactions, total, err := repo.FindPage(domain.Filter{
			UserID:   ownerA,
			DateFrom: testDate(2023, 12, 15),
			DateTo:   testDate(2024, 1, 15),
			HasDates: true,
			Limit:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, transaction := range transactions {
			assert.False(t, transaction.Date.Before(testDate(2023, 12, 15)))
			assert.False(t, transaction.Date.After(testDate(2024, 1, 15)))
		}
	})

	t.Run("paginates with a full count", func(t *testing.T) {
		transactions, total, err := repo.FindPage(domain.Filter{UserID: ownerA, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Len(t, transactions, 3)

		transactions, total, err = repo.FindPage(domain.Filter{UserID: ownerA, Limit: 3, Offset: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Len(t, transactions, 1)
	})

	t.Run("find by id is owner scoped", func(t *testing.T) {
		found, err := repo.FindByID(ownerA, "00000000-0000-0000-0000-000000000001")
		require.NoError(t, err)
		assert.Equal(t, 120.50, found.Amount)

		_, err = repo.FindByID(ownerA, "00000000-0000-0000-0000-000000000005")
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	})

	t.Run("update touches only the owner's record", func(t *testing.T) {
		err := repo.Update(domain.Transaction{
			ID: "00000000-0000-0000-0000-000000000005", UserID: ownerA,
			Amount: 1, Type: "expense", Category: "Food", Date: testDate(2024, 1, 12),
		})
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

		err = repo.Update(domain.Transaction{
			ID: "00000000-0000-0000-0000-000000000004", UserID: ownerA,
			Amount: 22.75, Type: "expense", Category: "Food", Description: "Team lunch", Date: testDate(2024, 1, 11),
		})
		require.NoError(t, err)

		updated, err := repo.FindByID(ownerA, "00000000-0000-0000-0000-000000000004")
		require.NoError(t, err)
		assert.Equal(t, 22.75, updated.Amount)
		assert.Equal(t, "Team lunch", updated.Description)
	})

	t.Run("delete is owner scoped", func(t *testing.T) {
		err := repo.Delete(ownerA, "00000000-0000-0000-0000-000000000005")
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

		require.NoError(t, repo.Delete(ownerB, "00000000-0000-0000-0000-000000000005"))
		_, err = repo.FindByID(ownerB, "00000000-0000-0000-0000-000000000005")
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	})
}
