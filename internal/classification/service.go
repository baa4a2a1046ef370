// Package classification manages a household's expense/income categories
// and keeps them synchronized with the household lifecycle: it seeds the
// default catalog when a household is created and removes everything when
// a household is deleted.
package classification

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"homeledger/internal/event"
	"homeledger/internal/fault"
	"homeledger/internal/model"
	"homeledger/internal/store"
)

type Service struct {
	store  *store.ClassificationStore
	bus    *event.Bus
	logger *slog.Logger
}

func NewService(s *store.ClassificationStore, bus *event.Bus, logger *slog.Logger) *Service {
	return &Service{store: s, bus: bus, logger: logger}
}

// Register subscribes the service to household lifecycle events.
func (s *Service) Register() {
	s.bus.Subscribe(event.KindHouseholdCreated, func(ev event.Event) error {
		return s.SeedDefaults(ev.(event.HouseholdCreated).HouseholdID)
	})
	s.bus.Subscribe(event.KindHouseholdDeleted, func(ev event.Event) error {
		return s.DeleteAllForHousehold(ev.(event.HouseholdDeleted).HouseholdID)
	})
}

// SeedDefaults provisions the starter catalog for a new household. Not
// idempotent: calling it twice for one household duplicates the catalog,
// so the household.created event must fire exactly once.
func (s *Service) SeedDefaults(householdID int64) error {
	for _, g := range defaultCatalog {
		group, err := s.store.CreateGroup(g.name, g.decorationColor, householdID)
		if err != nil {
			return fmt.Errorf("seed group %q: %w", g.name, err)
		}
		for _, entry := range g.entries {
			_, err := s.store.Create(model.Classification{
				Type:    g.typ,
				GroupID: group.ID,
				Labels: []model.ClassificationLabel{
					{Lang: "en", Value: entry.labelEN},
					{Lang: "pl", Value: entry.labelPL},
				},
				HouseholdID: householdID,
				IsDeletable: false,
				IsEditable:  false,
			})
			if err != nil {
				return fmt.Errorf("seed classification %q: %w", entry.labelEN, err)
			}
		}
	}
	s.logger.Info("seeded default classifications", "household_id", householdID)
	return nil
}

func (s *Service) List(householdID int64) ([]model.Classification, error) {
	return s.store.ListForHousehold(householdID)
}

func (s *Service) ListGroups(householdID int64) ([]model.ClassificationGroup, error) {
	return s.store.ListGroups(householdID)
}

// Create adds a user-defined classification. Type and group are copied
// from an existing classification in the same group; the submitted label
// is applied to every supported locale uniformly.
func (s *Service) Create(householdID, groupID int64, label string) (*model.Classification, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fault.Invalid("label is required")
	}

	template, err := s.store.FindByGroup(householdID, groupID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fault.Invalid("classification group does not exist")
	}

	labels := make([]model.ClassificationLabel, 0, len(model.SupportedLocales))
	for _, lang := range model.SupportedLocales {
		labels = append(labels, model.ClassificationLabel{Lang: lang, Value: label})
	}

	created, err := s.store.Create(model.Classification{
		Type:        template.Type,
		GroupID:     template.GroupID,
		Labels:      labels,
		HouseholdID: householdID,
		IsDeletable: true,
		IsEditable:  true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.bus.Publish(event.ClassificationCreated{
		HouseholdID:      householdID,
		ClassificationID: created.ID,
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes a user-deletable classification and announces the
// removal so budgets can drop its records from every existing period.
func (s *Service) Delete(householdID, id int64) error {
	c, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil || c.HouseholdID != householdID {
		return fault.NotFound("classification not found")
	}
	if !c.IsDeletable {
		return fault.Invalid("classification is not deletable")
	}

	if err := s.store.Delete(id); err != nil {
		return err
	}
	return s.bus.Publish(event.ClassificationDeleted{
		HouseholdID:      householdID,
		ClassificationID: id,
	})
}

func (s *Service) UpdateLabel(householdID, id int64, lang, value string) (*model.Classification, error) {
	c, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.HouseholdID != householdID {
		return nil, fault.NotFound("classification not found")
	}
	if !c.IsEditable {
		return nil, fault.Invalid("classification is not editable")
	}
	if !slices.Contains(model.SupportedLocales, lang) {
		return nil, fault.Invalid("unsupported locale %q", lang)
	}
	if strings.TrimSpace(value) == "" {
		return nil, fault.Invalid("label value is required")
	}

	if err := s.store.UpdateLabel(id, lang, strings.TrimSpace(value)); err != nil {
		return nil, err
	}
	return s.store.GetByID(id)
}

// DeleteAllForHousehold removes every classification and group owned by
// the household, unconditionally. No classification.deleted events are
// published; the budget cascade runs off the same household.deleted
// event.
func (s *Service) DeleteAllForHousehold(householdID int64) error {
	if err := s.store.DeleteAllForHousehold(householdID); err != nil {
		return err
	}
	return s.store.DeleteGroupsForHousehold(householdID)
}
