package store

import (
	"database/sql"
	"testing"

	"homeledger/internal/model"
)

func createTestClassification(t *testing.T, db *sql.DB, householdID, groupID int64, typ, labelEN string) *model.Classification {
	t.Helper()
	c, err := NewClassificationStore(db).Create(model.Classification{
		Type:    typ,
		GroupID: groupID,
		Labels: []model.ClassificationLabel{
			{Lang: "en", Value: labelEN},
			{Lang: "pl", Value: labelEN},
		},
		HouseholdID: householdID,
		IsDeletable: true,
		IsEditable:  true,
	})
	if err != nil {
		t.Fatalf("create test classification: %v", err)
	}
	return c
}

func TestClassificationCreateWithLabels(t *testing.T) {
	db := openTestDB(t)
	store := NewClassificationStore(db)
	hid, _ := createTestHousehold(t, db, "owner@example.com")

	group, err := store.CreateGroup("SHOPPING", "#F59E0B", hid)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	c := createTestClassification(t, db, hid, group.ID, model.TypeExpense, "Food")
	if len(c.Labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(c.Labels))
	}
	// Labels come back ordered by lang.
	if c.Labels[0].Lang != "en" || c.Labels[1].Lang != "pl" {
		t.Errorf("label langs = %s, %s, want en, pl", c.Labels[0].Lang, c.Labels[1].Lang)
	}
}

func TestClassificationFindByGroup(t *testing.T) {
	db := openTestDB(t)
	store := NewClassificationStore(db)
	hid, _ := createTestHousehold(t, db, "owner@example.com")

	group, _ := store.CreateGroup("SHOPPING", "#F59E0B", hid)
	first := createTestClassification(t, db, hid, group.ID, model.TypeExpense, "Food")
	createTestClassification(t, db, hid, group.ID, model.TypeExpense, "Takeaway")

	got, err := store.FindByGroup(hid, group.ID)
	if err != nil {
		t.Fatalf("find by group: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Errorf("find by group returned %+v, want id %d", got, first.ID)
	}

	missing, err := store.FindByGroup(hid, 999)
	if err != nil {
		t.Fatalf("find by missing group: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing group, got %+v", missing)
	}
}

func TestClassificationUpdateLabel(t *testing.T) {
	db := openTestDB(t)
	store := NewClassificationStore(db)
	hid, _ := createTestHousehold(t, db, "owner@example.com")

	group, _ := store.CreateGroup("SHOPPING", "#F59E0B", hid)
	c := createTestClassification(t, db, hid, group.ID, model.TypeExpense, "Food")

	if err := store.UpdateLabel(c.ID, "pl", "Jedzenie"); err != nil {
		t.Fatalf("update label: %v", err)
	}

	got, err := store.GetByID(c.ID)
	if err != nil {
		t.Fatalf("get classification: %v", err)
	}
	for _, l := range got.Labels {
		if l.Lang == "pl" && l.Value != "Jedzenie" {
			t.Errorf("pl label = %q, want Jedzenie", l.Value)
		}
		if l.Lang == "en" && l.Value != "Food" {
			t.Errorf("en label = %q, should be untouched", l.Value)
		}
	}
}

func TestClassificationDeleteAllForHousehold(t *testing.T) {
	db := openTestDB(t)
	store := NewClassificationStore(db)
	hid, _ := createTestHousehold(t, db, "owner@example.com")
	otherHID, _ := createTestHousehold(t, db, "other@example.com")

	group, _ := store.CreateGroup("SHOPPING", "#F59E0B", hid)
	otherGroup, _ := store.CreateGroup("SHOPPING", "#F59E0B", otherHID)
	createTestClassification(t, db, hid, group.ID, model.TypeExpense, "Food")
	kept := createTestClassification(t, db, otherHID, otherGroup.ID, model.TypeExpense, "Food")

	if err := store.DeleteAllForHousehold(hid); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if err := store.DeleteGroupsForHousehold(hid); err != nil {
		t.Fatalf("delete groups: %v", err)
	}

	list, _ := store.ListForHousehold(hid)
	if len(list) != 0 {
		t.Errorf("household still has %d classifications", len(list))
	}
	groups, _ := store.ListGroups(hid)
	if len(groups) != 0 {
		t.Errorf("household still has %d groups", len(groups))
	}

	// The other household is untouched.
	got, _ := store.GetByID(kept.ID)
	if got == nil {
		t.Error("other household's classification should survive")
	}
}
