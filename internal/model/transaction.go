package model

import "time"

// Amount is a monetary value in minor units (cents, grosze) plus an ISO
// currency code. No conversion logic exists; a household is assumed to
// keep all amounts in one currency.
type Amount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

type Transaction struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	TransactionDate  time.Time `json:"transaction_date"`
	CreatedAt        time.Time `json:"created_at"`
	Amount           Amount    `json:"amount"`
	Comment          *string   `json:"comment"`
	CreatorID        int64     `json:"creator_id"`
	Type             string    `json:"type"`
	ClassificationID int64     `json:"classification_id"`
	HouseholdID      int64     `json:"household_id"`
}
