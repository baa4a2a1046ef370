package store

import (
	"database/sql"
	"fmt"

	"homeledger/internal/model"
)

type HouseholdStore struct {
	db *sql.DB
}

func NewHouseholdStore(db *sql.DB) *HouseholdStore {
	return &HouseholdStore{db: db}
}

func scanHousehold(scanner interface{ Scan(...any) error }) (*model.Household, error) {
	var h model.Household
	err := scanner.Scan(&h.ID, &h.Name, &h.OwnerID, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func scanInvite(scanner interface{ Scan(...any) error }) (*model.Invite, error) {
	var inv model.Invite
	err := scanner.Scan(&inv.ID, &inv.HouseholdID, &inv.SenderID, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

const householdCols = `id, name, owner_id, created_at`
const inviteCols = `id, household_id, sender_id, created_at`

// Create inserts the household and its owner's membership row.
func (s *HouseholdStore) Create(name string, ownerID int64) (*model.Household, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO households (name, owner_id) VALUES (?, ?)`, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("insert household: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO household_members (household_id, user_id) VALUES (?, ?)`,
		id, ownerID,
	); err != nil {
		return nil, fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *HouseholdStore) GetByID(id int64) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE id = ?`, id)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

func (s *HouseholdStore) GetByOwner(ownerID int64) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE owner_id = ?`, ownerID)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household by owner: %w", err)
	}
	return h, nil
}

// GetByOwnerEmail finds the household whose owner registered with email.
func (s *HouseholdStore) GetByOwnerEmail(email string) (*model.Household, error) {
	row := s.db.QueryRow(
		`SELECT h.id, h.name, h.owner_id, h.created_at
		 FROM households h
		 JOIN users u ON u.id = h.owner_id
		 WHERE u.email = ?`,
		email,
	)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household by owner email: %w", err)
	}
	return h, nil
}

// GetForUser returns the household the user is a member of, or nil.
func (s *HouseholdStore) GetForUser(userID int64) (*model.Household, error) {
	row := s.db.QueryRow(
		`SELECT h.id, h.name, h.owner_id, h.created_at
		 FROM households h
		 JOIN household_members hm ON hm.household_id = h.id
		 WHERE hm.user_id = ?`,
		userID,
	)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household for user: %w", err)
	}
	return h, nil
}

// Delete removes the household row along with its memberships and
// invites. Classifications, transactions and budget records are the
// event subscribers' responsibility.
func (s *HouseholdStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE users SET household_id = NULL WHERE household_id = ?`, id); err != nil {
		return fmt.Errorf("unlink members: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM household_invites WHERE household_id = ?`, id); err != nil {
		return fmt.Errorf("delete invites: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM household_members WHERE household_id = ?`, id); err != nil {
		return fmt.Errorf("delete members: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM households WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete household: %w", err)
	}
	return tx.Commit()
}

func (s *HouseholdStore) AddMember(householdID, userID int64) error {
	_, err := s.db.Exec(
		`INSERT INTO household_members (household_id, user_id) VALUES (?, ?)`,
		householdID, userID,
	)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func (s *HouseholdStore) RemoveMember(householdID, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM household_members WHERE household_id = ? AND user_id = ?`,
		householdID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func (s *HouseholdStore) IsMember(householdID, userID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM household_members WHERE household_id = ? AND user_id = ?`,
		householdID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return n > 0, nil
}

func (s *HouseholdStore) ListMembers(householdID int64) ([]model.User, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.email, u.name, u.household_id, u.has_pending_invite, u.created_at
		 FROM users u
		 JOIN household_members hm ON hm.user_id = u.id
		 WHERE hm.household_id = ?
		 ORDER BY hm.created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *u)
	}
	return members, rows.Err()
}

func (s *HouseholdStore) CreateInvite(id string, householdID, senderID int64) (*model.Invite, error) {
	_, err := s.db.Exec(
		`INSERT INTO household_invites (id, household_id, sender_id) VALUES (?, ?, ?)`,
		id, householdID, senderID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}
	return s.GetInvite(householdID, id)
}

func (s *HouseholdStore) GetInvite(householdID int64, inviteID string) (*model.Invite, error) {
	row := s.db.QueryRow(
		`SELECT `+inviteCols+` FROM household_invites WHERE household_id = ? AND id = ?`,
		householdID, inviteID,
	)
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

func (s *HouseholdStore) HasInviteFromSender(householdID, senderID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM household_invites WHERE household_id = ? AND sender_id = ?`,
		householdID, senderID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check invite: %w", err)
	}
	return n > 0, nil
}

func (s *HouseholdStore) ListInvites(householdID int64) ([]model.Invite, error) {
	rows, err := s.db.Query(
		`SELECT `+inviteCols+` FROM household_invites WHERE household_id = ? ORDER BY created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	var invites []model.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		invites = append(invites, *inv)
	}
	return invites, rows.Err()
}

func (s *HouseholdStore) DeleteInvite(householdID int64, inviteID string) error {
	_, err := s.db.Exec(
		`DELETE FROM household_invites WHERE household_id = ? AND id = ?`,
		householdID, inviteID,
	)
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}
