package model

import "time"

type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	HouseholdID      *int64    `json:"household_id"`
	HasPendingInvite bool      `json:"has_pending_invite"`
	CreatedAt        time.Time `json:"created_at"`
}
