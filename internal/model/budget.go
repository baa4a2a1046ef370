package model

type BudgetRecord struct {
	ID               int64 `json:"id"`
	Year             int   `json:"year"`
	Month            int   `json:"month"`
	PlannedTotal     int64 `json:"planned_total"`
	ActualTotal      int64 `json:"actual_total"`
	ClassificationID int64 `json:"classification_id"`
	HouseholdID      int64 `json:"household_id"`
	CreatorID        int64 `json:"creator_id"`
}

// Period is a (month, year) pair. A period is "active" for a household
// once at least one budget record exists in it.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}
