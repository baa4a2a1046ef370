// Package household owns the household lifecycle: creation, deletion and
// the invite/membership flow. Creation and deletion fan out to the other
// stores through the event bus, so this package never touches
// classifications, budgets or transactions directly.
package household

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"homeledger/internal/event"
	"homeledger/internal/fault"
	"homeledger/internal/model"
	"homeledger/internal/store"
)

type Coordinator struct {
	households *store.HouseholdStore
	users      *store.UserStore
	bus        *event.Bus
	logger     *slog.Logger
}

func NewCoordinator(households *store.HouseholdStore, users *store.UserStore, bus *event.Bus, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		households: households,
		users:      users,
		bus:        bus,
		logger:     logger,
	}
}

// Create makes a new household with ownerID as its sole member and
// publishes household.created so the default classifications get seeded.
func (c *Coordinator) Create(ownerID int64, name string) (*model.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.Invalid("household name is required")
	}

	existing, err := c.households.GetForUser(ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fault.Exists("user already has a household")
	}

	h, err := c.households.Create(name, ownerID)
	if err != nil {
		return nil, err
	}
	if err := c.users.SetHousehold(ownerID, &h.ID); err != nil {
		return nil, err
	}

	if err := c.bus.Publish(event.HouseholdCreated{HouseholdID: h.ID}); err != nil {
		return nil, err
	}
	c.logger.Info("household created", "household_id", h.ID, "owner_id", ownerID)
	return c.Get(ownerID)
}

// Get returns the household the user belongs to, with members and
// pending invites populated.
func (c *Coordinator) Get(userID int64) (*model.Household, error) {
	h, err := c.households.GetForUser(userID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fault.NotFound("household does not exist")
	}

	if h.Members, err = c.households.ListMembers(h.ID); err != nil {
		return nil, err
	}
	if h.PendingInvites, err = c.households.ListInvites(h.ID); err != nil {
		return nil, err
	}
	return h, nil
}

// Delete removes the household owned by ownerID. The deletion event is
// published first; its subscribers remove the household's
// classifications, transactions and budget records (best-effort,
// unordered among themselves, not transactional with the household row).
func (c *Coordinator) Delete(ownerID int64) error {
	h, err := c.households.GetByOwner(ownerID)
	if err != nil {
		return err
	}
	if h == nil {
		return fault.NotFound("household does not exist")
	}

	if err := c.bus.Publish(event.HouseholdDeleted{HouseholdID: h.ID}); err != nil {
		return err
	}

	if err := c.households.Delete(h.ID); err != nil {
		return err
	}
	c.logger.Info("household deleted", "household_id", h.ID, "owner_id", ownerID)
	return nil
}

// SendInvite records senderID's request to join the household owned by
// ownerEmail. Any user may send one; the owner accepts or declines.
func (c *Coordinator) SendInvite(senderID int64, ownerEmail string) (*model.Household, error) {
	h, err := c.households.GetByOwnerEmail(strings.TrimSpace(ownerEmail))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fault.NotFound("household does not exist")
	}

	isMember, err := c.households.IsMember(h.ID, senderID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, fault.Invalid("user already in household")
	}

	hasInvite, err := c.households.HasInviteFromSender(h.ID, senderID)
	if err != nil {
		return nil, err
	}
	if hasInvite {
		return nil, fault.Invalid("invite already sent to household")
	}

	if _, err := c.households.CreateInvite(uuid.NewString(), h.ID, senderID); err != nil {
		return nil, err
	}
	if err := c.users.SetPendingInvite(senderID, true); err != nil {
		return nil, err
	}
	return c.Get(h.OwnerID)
}

// AcceptInvite is an owner-only action: the invite's sender joins the
// household and their user record is linked to it.
func (c *Coordinator) AcceptInvite(userID int64, inviteID string) (*model.Household, error) {
	h, inv, err := c.ownedInvite(userID, inviteID)
	if err != nil {
		return nil, err
	}

	if err := c.households.AddMember(h.ID, inv.SenderID); err != nil {
		return nil, err
	}
	if err := c.users.SetHousehold(inv.SenderID, &h.ID); err != nil {
		return nil, err
	}
	if err := c.users.SetPendingInvite(inv.SenderID, false); err != nil {
		return nil, err
	}
	if err := c.households.DeleteInvite(h.ID, inviteID); err != nil {
		return nil, err
	}
	return c.Get(userID)
}

// DeclineInvite is an owner-only action: the invite is dropped and the
// sender's pending flag cleared.
func (c *Coordinator) DeclineInvite(userID int64, inviteID string) (*model.Household, error) {
	h, inv, err := c.ownedInvite(userID, inviteID)
	if err != nil {
		return nil, err
	}

	if err := c.households.DeleteInvite(h.ID, inviteID); err != nil {
		return nil, err
	}
	if err := c.users.SetPendingInvite(inv.SenderID, false); err != nil {
		return nil, err
	}
	return c.Get(userID)
}

// RemoveMember is an owner-only action. The owner cannot be removed.
func (c *Coordinator) RemoveMember(userID, memberID int64) (*model.Household, error) {
	h, err := c.ownedHousehold(userID)
	if err != nil {
		return nil, err
	}

	isMember, err := c.households.IsMember(h.ID, memberID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, fault.NotFound("member does not exist")
	}
	if h.OwnerID == memberID {
		return nil, fault.Invalid("household owner cannot be removed")
	}

	if err := c.households.RemoveMember(h.ID, memberID); err != nil {
		return nil, err
	}
	if err := c.users.SetHousehold(memberID, nil); err != nil {
		return nil, err
	}
	return c.Get(userID)
}

func (c *Coordinator) ownedHousehold(userID int64) (*model.Household, error) {
	h, err := c.households.GetForUser(userID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fault.NotFound("household does not exist")
	}
	if h.OwnerID != userID {
		return nil, fault.Forbidden("user is not owner of household")
	}
	return h, nil
}

func (c *Coordinator) ownedInvite(userID int64, inviteID string) (*model.Household, *model.Invite, error) {
	h, err := c.ownedHousehold(userID)
	if err != nil {
		return nil, nil, err
	}
	inv, err := c.households.GetInvite(h.ID, inviteID)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, fault.NotFound("invite does not exist")
	}
	return h, inv, nil
}
