package store

import (
	"database/sql"
	"fmt"
	"time"

	"homeledger/internal/model"
)

type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func scanTransaction(scanner interface{ Scan(...any) error }) (*model.Transaction, error) {
	var t model.Transaction
	var comment sql.NullString
	err := scanner.Scan(
		&t.ID, &t.Name, &t.TransactionDate, &t.CreatedAt,
		&t.Amount.Value, &t.Amount.Currency, &comment,
		&t.CreatorID, &t.Type, &t.ClassificationID, &t.HouseholdID,
	)
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		t.Comment = &comment.String
	}
	return &t, nil
}

const transactionCols = `id, name, transaction_date, created_at, amount_value, amount_currency, comment, creator_id, type, classification_id, household_id`

func (s *TransactionStore) Create(t model.Transaction) (*model.Transaction, error) {
	result, err := s.db.Exec(
		`INSERT INTO transactions (name, transaction_date, amount_value, amount_currency, comment, creator_id, type, classification_id, household_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.TransactionDate, t.Amount.Value, t.Amount.Currency, t.Comment,
		t.CreatorID, t.Type, t.ClassificationID, t.HouseholdID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getByID(id)
}

// CreateBatch inserts all transactions in one database transaction and
// returns them in insertion order.
func (s *TransactionStore) CreateBatch(batch []model.Transaction) ([]model.Transaction, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(batch))
	for _, t := range batch {
		result, err := tx.Exec(
			`INSERT INTO transactions (name, transaction_date, amount_value, amount_currency, comment, creator_id, type, classification_id, household_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Name, t.TransactionDate, t.Amount.Value, t.Amount.Currency, t.Comment,
			t.CreatorID, t.Type, t.ClassificationID, t.HouseholdID,
		)
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	created := make([]model.Transaction, 0, len(ids))
	for _, id := range ids {
		t, err := s.getByID(id)
		if err != nil {
			return nil, err
		}
		created = append(created, *t)
	}
	return created, nil
}

func (s *TransactionStore) getByID(id int64) (*model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionCols+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *TransactionStore) Get(householdID, id int64) (*model.Transaction, error) {
	row := s.db.QueryRow(
		`SELECT `+transactionCols+` FROM transactions WHERE household_id = ? AND id = ?`,
		householdID, id,
	)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *TransactionStore) ListForHousehold(householdID int64) ([]model.Transaction, error) {
	return s.list(
		`SELECT `+transactionCols+` FROM transactions WHERE household_id = ? ORDER BY transaction_date DESC, id DESC`,
		householdID,
	)
}

// ListByDateScope returns the household's transactions dated within
// [start, end] inclusive.
func (s *TransactionStore) ListByDateScope(householdID int64, start, end time.Time) ([]model.Transaction, error) {
	return s.list(
		`SELECT `+transactionCols+` FROM transactions
		 WHERE household_id = ? AND transaction_date >= ? AND transaction_date <= ?
		 ORDER BY transaction_date ASC, id ASC`,
		householdID, start, end,
	)
}

func (s *TransactionStore) list(query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func (s *TransactionStore) Update(id int64, name string, date time.Time, amount model.Amount, comment *string) (*model.Transaction, error) {
	_, err := s.db.Exec(
		`UPDATE transactions SET name = ?, transaction_date = ?, amount_value = ?, amount_currency = ?, comment = ? WHERE id = ?`,
		name, date, amount.Value, amount.Currency, comment, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return s.getByID(id)
}

func (s *TransactionStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *TransactionStore) DeleteAllForHousehold(householdID int64) error {
	_, err := s.db.Exec(`DELETE FROM transactions WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete household transactions: %w", err)
	}
	return nil
}
