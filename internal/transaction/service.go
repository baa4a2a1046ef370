// Package transaction manages monetary movements, including the eager
// expansion of a recurrence rule into a batch of dated transactions.
package transaction

import (
	"log/slog"
	"strings"
	"time"

	"homeledger/internal/event"
	"homeledger/internal/fault"
	"homeledger/internal/model"
	"homeledger/internal/recurrence"
	"homeledger/internal/store"
)

// Occurrence bounds for cyclic transactions. A request must expand to at
// least one and at most maxOccurrences concrete transactions.
const (
	minOccurrences = 0
	maxOccurrences = 60
)

type CreateInput struct {
	Name             string
	TransactionDate  time.Time
	Amount           model.Amount
	Comment          *string
	CreatorID        int64
	ClassificationID int64
}

type CreateCyclicInput struct {
	Name             string
	StartDate        time.Time
	Frequency        string
	Occurrences      int
	Amount           model.Amount
	Comment          *string
	CreatorID        int64
	ClassificationID int64
}

type Service struct {
	transactions    *store.TransactionStore
	classifications *store.ClassificationStore
	logger          *slog.Logger
	now             func() time.Time
}

func NewService(transactions *store.TransactionStore, classifications *store.ClassificationStore, logger *slog.Logger) *Service {
	return &Service{
		transactions:    transactions,
		classifications: classifications,
		logger:          logger,
		now:             time.Now,
	}
}

// Register subscribes the service to household deletion.
func (s *Service) Register(bus *event.Bus) {
	bus.Subscribe(event.KindHouseholdDeleted, func(ev event.Event) error {
		return s.transactions.DeleteAllForHousehold(ev.(event.HouseholdDeleted).HouseholdID)
	})
}

// Create records a single transaction. Type and household come from the
// referenced classification, not from the request.
func (s *Service) Create(in CreateInput) (*model.Transaction, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fault.Invalid("name is required")
	}

	c, err := s.classifications.GetByID(in.ClassificationID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fault.NotFound("classification not found")
	}

	return s.transactions.Create(model.Transaction{
		Name:             strings.TrimSpace(in.Name),
		TransactionDate:  in.TransactionDate,
		Amount:           in.Amount,
		Comment:          in.Comment,
		CreatorID:        in.CreatorID,
		Type:             c.Type,
		ClassificationID: c.ID,
		HouseholdID:      c.HouseholdID,
	})
}

// CreateCyclic expands the recurrence into a batch of transactions: the
// first dated at the start date, each next advanced from its
// predecessor by the frequency. Everything but the date is shared.
func (s *Service) CreateCyclic(in CreateCyclicInput) ([]model.Transaction, error) {
	if in.StartDate.Before(s.now()) {
		return nil, fault.Invalid("start date cannot be in the past")
	}
	if in.Occurrences <= minOccurrences {
		return nil, fault.Invalid("occurrences must be greater than %d", minOccurrences)
	}
	if in.Occurrences > maxOccurrences {
		return nil, fault.Invalid("occurrences must be at most %d", maxOccurrences)
	}
	freq, err := recurrence.ParseFrequency(in.Frequency)
	if err != nil {
		return nil, fault.Invalid("invalid frequency")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fault.Invalid("name is required")
	}

	c, err := s.classifications.GetByID(in.ClassificationID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fault.NotFound("classification not found")
	}

	dates := recurrence.Dates(in.StartDate, freq, in.Occurrences)
	batch := make([]model.Transaction, 0, len(dates))
	for _, date := range dates {
		batch = append(batch, model.Transaction{
			Name:             strings.TrimSpace(in.Name),
			TransactionDate:  date,
			Amount:           in.Amount,
			Comment:          in.Comment,
			CreatorID:        in.CreatorID,
			Type:             c.Type,
			ClassificationID: c.ID,
			HouseholdID:      c.HouseholdID,
		})
	}

	created, err := s.transactions.CreateBatch(batch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("cyclic transaction created",
		"household_id", c.HouseholdID,
		"classification_id", c.ID,
		"occurrences", len(created),
		"frequency", freq.String(),
	)
	return created, nil
}

func (s *Service) List(householdID int64) ([]model.Transaction, error) {
	return s.transactions.ListForHousehold(householdID)
}

func (s *Service) Get(householdID, id int64) (*model.Transaction, error) {
	t, err := s.transactions.Get(householdID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fault.NotFound("transaction not found")
	}
	return t, nil
}

func (s *Service) Update(householdID, id int64, name string, date time.Time, amount model.Amount, comment *string) (*model.Transaction, error) {
	if _, err := s.Get(householdID, id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fault.Invalid("name is required")
	}
	return s.transactions.Update(id, strings.TrimSpace(name), date, amount, comment)
}

func (s *Service) Delete(householdID, id int64) error {
	if _, err := s.Get(householdID, id); err != nil {
		return err
	}
	return s.transactions.Delete(id)
}
