package store

import (
	"database/sql"
	"fmt"

	"homeledger/internal/model"
)

type ClassificationStore struct {
	db *sql.DB
}

func NewClassificationStore(db *sql.DB) *ClassificationStore {
	return &ClassificationStore{db: db}
}

func scanClassification(scanner interface{ Scan(...any) error }) (*model.Classification, error) {
	var c model.Classification
	err := scanner.Scan(&c.ID, &c.Type, &c.GroupID, &c.HouseholdID, &c.IsDeletable, &c.IsEditable)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanGroup(scanner interface{ Scan(...any) error }) (*model.ClassificationGroup, error) {
	var g model.ClassificationGroup
	err := scanner.Scan(&g.ID, &g.Name, &g.DecorationColor, &g.HouseholdID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

const classificationCols = `id, type, group_id, household_id, is_deletable, is_editable`
const groupCols = `id, name, decoration_color, household_id`

// Create inserts the classification and its labels in one transaction.
func (s *ClassificationStore) Create(c model.Classification) (*model.Classification, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO classifications (type, group_id, household_id, is_deletable, is_editable)
		 VALUES (?, ?, ?, ?, ?)`,
		c.Type, c.GroupID, c.HouseholdID, c.IsDeletable, c.IsEditable,
	)
	if err != nil {
		return nil, fmt.Errorf("insert classification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, label := range c.Labels {
		if _, err := tx.Exec(
			`INSERT INTO classification_labels (classification_id, lang, value) VALUES (?, ?, ?)`,
			id, label.Lang, label.Value,
		); err != nil {
			return nil, fmt.Errorf("insert label %q: %w", label.Lang, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *ClassificationStore) GetByID(id int64) (*model.Classification, error) {
	row := s.db.QueryRow(`SELECT `+classificationCols+` FROM classifications WHERE id = ?`, id)
	c, err := scanClassification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get classification: %w", err)
	}
	if c.Labels, err = s.labels(id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClassificationStore) ListForHousehold(householdID int64) ([]model.Classification, error) {
	rows, err := s.db.Query(
		`SELECT `+classificationCols+` FROM classifications WHERE household_id = ? ORDER BY id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer rows.Close()

	var classifications []model.Classification
	for rows.Next() {
		c, err := scanClassification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		classifications = append(classifications, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range classifications {
		if classifications[i].Labels, err = s.labels(classifications[i].ID); err != nil {
			return nil, err
		}
	}
	return classifications, nil
}

// FindByGroup returns the first classification in the household carrying
// groupID, used as the template when creating a custom classification.
func (s *ClassificationStore) FindByGroup(householdID, groupID int64) (*model.Classification, error) {
	row := s.db.QueryRow(
		`SELECT `+classificationCols+` FROM classifications
		 WHERE household_id = ? AND group_id = ? ORDER BY id ASC LIMIT 1`,
		householdID, groupID,
	)
	c, err := scanClassification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find classification by group: %w", err)
	}
	if c.Labels, err = s.labels(c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClassificationStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM classifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete classification: %w", err)
	}
	return nil
}

func (s *ClassificationStore) DeleteAllForHousehold(householdID int64) error {
	_, err := s.db.Exec(`DELETE FROM classifications WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete household classifications: %w", err)
	}
	return nil
}

func (s *ClassificationStore) UpdateLabel(id int64, lang, value string) error {
	_, err := s.db.Exec(
		`UPDATE classification_labels SET value = ? WHERE classification_id = ? AND lang = ?`,
		value, id, lang,
	)
	if err != nil {
		return fmt.Errorf("update label: %w", err)
	}
	return nil
}

func (s *ClassificationStore) CreateGroup(name, decorationColor string, householdID int64) (*model.ClassificationGroup, error) {
	result, err := s.db.Exec(
		`INSERT INTO classification_groups (name, decoration_color, household_id) VALUES (?, ?, ?)`,
		name, decorationColor, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+groupCols+` FROM classification_groups WHERE id = ?`, id)
	return scanGroup(row)
}

func (s *ClassificationStore) ListGroups(householdID int64) ([]model.ClassificationGroup, error) {
	rows, err := s.db.Query(
		`SELECT `+groupCols+` FROM classification_groups WHERE household_id = ? ORDER BY id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []model.ClassificationGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func (s *ClassificationStore) DeleteGroupsForHousehold(householdID int64) error {
	_, err := s.db.Exec(`DELETE FROM classification_groups WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete household groups: %w", err)
	}
	return nil
}

func (s *ClassificationStore) labels(classificationID int64) ([]model.ClassificationLabel, error) {
	rows, err := s.db.Query(
		`SELECT lang, value FROM classification_labels WHERE classification_id = ? ORDER BY lang ASC`,
		classificationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	var labels []model.ClassificationLabel
	for rows.Next() {
		var l model.ClassificationLabel
		if err := rows.Scan(&l.Lang, &l.Value); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}
