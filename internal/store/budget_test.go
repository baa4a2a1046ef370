package store

import (
	"testing"

	"homeledger/internal/model"
)

func TestBudgetCreateAndFind(t *testing.T) {
	db := openTestDB(t)
	budgets := NewBudgetStore(db)
	hid, ownerID := createTestHousehold(t, db, "owner@example.com")

	created, err := budgets.Create(model.BudgetRecord{
		Year:             2024,
		Month:            3,
		PlannedTotal:     50000,
		ActualTotal:      12300,
		ClassificationID: 1,
		HouseholdID:      hid,
		CreatorID:        ownerID,
	})
	if err != nil {
		t.Fatalf("create budget record: %v", err)
	}

	found, err := budgets.Find(hid, 1, 3, 2024)
	if err != nil {
		t.Fatalf("find budget record: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("find returned %+v, want id %d", found, created.ID)
	}
	if found.PlannedTotal != 50000 || found.ActualTotal != 12300 {
		t.Errorf("totals = %d/%d, want 50000/12300", found.PlannedTotal, found.ActualTotal)
	}

	missing, err := budgets.Find(hid, 1, 4, 2024)
	if err != nil {
		t.Fatalf("find missing record: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for other period, got %+v", missing)
	}
}

func TestBudgetUniquePerPeriod(t *testing.T) {
	db := openTestDB(t)
	budgets := NewBudgetStore(db)
	hid, ownerID := createTestHousehold(t, db, "owner@example.com")

	record := model.BudgetRecord{
		Year: 2024, Month: 3,
		ClassificationID: 1, HouseholdID: hid, CreatorID: ownerID,
	}
	if _, err := budgets.Create(record); err != nil {
		t.Fatalf("create budget record: %v", err)
	}
	if _, err := budgets.Create(record); err == nil {
		t.Error("expected unique constraint error for duplicate (household, classification, period)")
	}
}

func TestBudgetListForPeriod(t *testing.T) {
	db := openTestDB(t)
	budgets := NewBudgetStore(db)
	hid, ownerID := createTestHousehold(t, db, "owner@example.com")

	for _, cid := range []int64{1, 2, 3} {
		if _, err := budgets.Create(model.BudgetRecord{
			Year: 2024, Month: 3,
			ClassificationID: cid, HouseholdID: hid, CreatorID: ownerID,
		}); err != nil {
			t.Fatalf("create record %d: %v", cid, err)
		}
	}
	if _, err := budgets.Create(model.BudgetRecord{
		Year: 2024, Month: 4,
		ClassificationID: 1, HouseholdID: hid, CreatorID: ownerID,
	}); err != nil {
		t.Fatalf("create other period record: %v", err)
	}

	march, err := budgets.ListForPeriod(hid, 3, 2024)
	if err != nil {
		t.Fatalf("list for period: %v", err)
	}
	if len(march) != 3 {
		t.Errorf("march has %d records, want 3", len(march))
	}

	all, err := budgets.ListForHousehold(hid)
	if err != nil {
		t.Fatalf("list for household: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("household has %d records, want 4", len(all))
	}
}

func TestBudgetUpdatePlannedTotal(t *testing.T) {
	db := openTestDB(t)
	budgets := NewBudgetStore(db)
	hid, ownerID := createTestHousehold(t, db, "owner@example.com")

	created, err := budgets.Create(model.BudgetRecord{
		Year: 2024, Month: 3,
		ClassificationID: 1, HouseholdID: hid, CreatorID: ownerID,
	})
	if err != nil {
		t.Fatalf("create record: %v", err)
	}

	if err := budgets.UpdatePlannedTotal(created.ID, 75000); err != nil {
		t.Fatalf("update planned total: %v", err)
	}
	got, _ := budgets.Get(hid, created.ID)
	if got.PlannedTotal != 75000 {
		t.Errorf("planned total = %d, want 75000", got.PlannedTotal)
	}
}

func TestBudgetDeleteAllForHousehold(t *testing.T) {
	db := openTestDB(t)
	budgets := NewBudgetStore(db)
	hid, ownerID := createTestHousehold(t, db, "owner@example.com")
	otherHID, otherOwner := createTestHousehold(t, db, "other@example.com")

	if _, err := budgets.Create(model.BudgetRecord{
		Year: 2024, Month: 3, ClassificationID: 1, HouseholdID: hid, CreatorID: ownerID,
	}); err != nil {
		t.Fatalf("create record: %v", err)
	}
	if _, err := budgets.Create(model.BudgetRecord{
		Year: 2024, Month: 3, ClassificationID: 1, HouseholdID: otherHID, CreatorID: otherOwner,
	}); err != nil {
		t.Fatalf("create other record: %v", err)
	}

	if err := budgets.DeleteAllForHousehold(hid); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	mine, _ := budgets.ListForHousehold(hid)
	if len(mine) != 0 {
		t.Errorf("household still has %d records", len(mine))
	}
	theirs, _ := budgets.ListForHousehold(otherHID)
	if len(theirs) != 1 {
		t.Errorf("other household has %d records, want 1", len(theirs))
	}
}
