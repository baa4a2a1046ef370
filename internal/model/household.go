package model

import "time"

type Household struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	OwnerID        int64     `json:"owner_id"`
	Members        []User    `json:"members,omitempty"`
	PendingInvites []Invite  `json:"pending_invites,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Invite is a pending request to join a household, created by the user
// who wants in and acted on by the household owner.
type Invite struct {
	ID          string    `json:"id"`
	HouseholdID int64     `json:"household_id"`
	SenderID    int64     `json:"sender_id"`
	CreatedAt   time.Time `json:"created_at"`
}
