package store

import (
	"database/sql"
	"fmt"

	"homeledger/internal/model"
)

type BudgetStore struct {
	db *sql.DB
}

func NewBudgetStore(db *sql.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

func scanBudgetRecord(scanner interface{ Scan(...any) error }) (*model.BudgetRecord, error) {
	var r model.BudgetRecord
	err := scanner.Scan(
		&r.ID, &r.Year, &r.Month, &r.PlannedTotal, &r.ActualTotal,
		&r.ClassificationID, &r.HouseholdID, &r.CreatorID,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const budgetRecordCols = `id, year, month, planned_total, actual_total, classification_id, household_id, creator_id`

func (s *BudgetStore) Create(r model.BudgetRecord) (*model.BudgetRecord, error) {
	result, err := s.db.Exec(
		`INSERT INTO budget_records (year, month, planned_total, actual_total, classification_id, household_id, creator_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Year, r.Month, r.PlannedTotal, r.ActualTotal, r.ClassificationID, r.HouseholdID, r.CreatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert budget record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+budgetRecordCols+` FROM budget_records WHERE id = ?`, id)
	return scanBudgetRecord(row)
}

func (s *BudgetStore) Get(householdID, id int64) (*model.BudgetRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+budgetRecordCols+` FROM budget_records WHERE household_id = ? AND id = ?`,
		householdID, id,
	)
	r, err := scanBudgetRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget record: %w", err)
	}
	return r, nil
}

// Find looks up the record for one classification in one period.
func (s *BudgetStore) Find(householdID, classificationID int64, month, year int) (*model.BudgetRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+budgetRecordCols+` FROM budget_records
		 WHERE household_id = ? AND classification_id = ? AND month = ? AND year = ?`,
		householdID, classificationID, month, year,
	)
	r, err := scanBudgetRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find budget record: %w", err)
	}
	return r, nil
}

func (s *BudgetStore) ListForHousehold(householdID int64) ([]model.BudgetRecord, error) {
	return s.list(
		`SELECT `+budgetRecordCols+` FROM budget_records WHERE household_id = ? ORDER BY year, month, id`,
		householdID,
	)
}

func (s *BudgetStore) ListForPeriod(householdID int64, month, year int) ([]model.BudgetRecord, error) {
	return s.list(
		`SELECT `+budgetRecordCols+` FROM budget_records
		 WHERE household_id = ? AND month = ? AND year = ? ORDER BY id`,
		householdID, month, year,
	)
}

func (s *BudgetStore) list(query string, args ...any) ([]model.BudgetRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budget records: %w", err)
	}
	defer rows.Close()

	var records []model.BudgetRecord
	for rows.Next() {
		r, err := scanBudgetRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget record: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func (s *BudgetStore) UpdatePlannedTotal(id, plannedTotal int64) error {
	_, err := s.db.Exec(`UPDATE budget_records SET planned_total = ? WHERE id = ?`, plannedTotal, id)
	if err != nil {
		return fmt.Errorf("update planned total: %w", err)
	}
	return nil
}

func (s *BudgetStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM budget_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget record: %w", err)
	}
	return nil
}

func (s *BudgetStore) DeleteAllForHousehold(householdID int64) error {
	_, err := s.db.Exec(`DELETE FROM budget_records WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete household budget records: %w", err)
	}
	return nil
}
