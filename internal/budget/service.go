// Package budget manages per-period planned/actual budget records and
// keeps them consistent with the household's classification set. A
// period (month, year) exists only implicitly: it is "active" once at
// least one classification has a record in it. Classification changes
// adjust records within active periods but never create or destroy
// periods.
package budget

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"homeledger/internal/event"
	"homeledger/internal/fault"
	"homeledger/internal/model"
	"homeledger/internal/store"
)

const (
	minYear = 1990
	maxYear = 2050
)

type SyncAction int

const (
	SyncAdd SyncAction = iota
	SyncRemove
)

type Service struct {
	budgets         *store.BudgetStore
	classifications *store.ClassificationStore
	transactions    *store.TransactionStore
	logger          *slog.Logger
}

func NewService(
	budgets *store.BudgetStore,
	classifications *store.ClassificationStore,
	transactions *store.TransactionStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		budgets:         budgets,
		classifications: classifications,
		transactions:    transactions,
		logger:          logger,
	}
}

// Register subscribes the service to classification and household
// lifecycle events.
func (s *Service) Register(bus *event.Bus) {
	bus.Subscribe(event.KindClassificationCreated, func(ev event.Event) error {
		e := ev.(event.ClassificationCreated)
		return s.Sync(SyncAdd, e.HouseholdID, e.ClassificationID)
	})
	bus.Subscribe(event.KindClassificationDeleted, func(ev event.Event) error {
		e := ev.(event.ClassificationDeleted)
		return s.Sync(SyncRemove, e.HouseholdID, e.ClassificationID)
	})
	bus.Subscribe(event.KindHouseholdDeleted, func(ev event.Event) error {
		return s.DeleteAllForHousehold(ev.(event.HouseholdDeleted).HouseholdID)
	})
}

// CreateBudget opens the (month, year) period for the household: one
// record per expense classification, planned total zero, actual total
// computed from the period's transactions.
func (s *Service) CreateBudget(userID, householdID int64, month, year int) ([]model.BudgetRecord, error) {
	if month < 1 || month > 12 {
		return nil, fault.Invalid("month must be between 1 and 12")
	}
	if year < minYear || year > maxYear {
		return nil, fault.Invalid("year must be between %d and %d", minYear, maxYear)
	}

	existing, err := s.budgets.ListForPeriod(householdID, month, year)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fault.Exists("budget already exists")
	}

	classifications, err := s.classifications.ListForHousehold(householdID)
	if err != nil {
		return nil, err
	}

	var created []model.BudgetRecord
	for _, c := range classifications {
		if c.Type != model.TypeExpense {
			continue
		}
		actualTotal, err := s.actualTotal(c.ID, householdID, month, year)
		if err != nil {
			return nil, err
		}
		record, err := s.budgets.Create(model.BudgetRecord{
			Year:             year,
			Month:            month,
			PlannedTotal:     0,
			ActualTotal:      actualTotal,
			ClassificationID: c.ID,
			HouseholdID:      householdID,
			CreatorID:        userID,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *record)
	}
	return created, nil
}

// PeriodicRecords returns the period's records with actual totals
// recomputed from transactions rather than trusted from storage.
func (s *Service) PeriodicRecords(householdID int64, month, year int) ([]model.BudgetRecord, error) {
	records, err := s.budgets.ListForPeriod(householdID, month, year)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fault.NotFound("budget records not found")
	}

	for i := range records {
		actualTotal, err := s.actualTotal(records[i].ClassificationID, householdID, month, year)
		if err != nil {
			return nil, err
		}
		records[i].ActualTotal = actualTotal
	}
	return records, nil
}

func (s *Service) UpdateRecord(householdID, recordID, plannedTotal int64) (*model.BudgetRecord, error) {
	record, err := s.budgets.Get(householdID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fault.NotFound("budget record not found")
	}

	if err := s.budgets.UpdatePlannedTotal(recordID, plannedTotal); err != nil {
		return nil, err
	}
	return s.budgets.Get(householdID, recordID)
}

// Sync adjusts the classification's presence in every active budget
// period after the classification set changed. Per-period operations run
// concurrently with no ordering guarantee; a partial failure leaves the
// other periods' changes in place.
//
// Records added here start with actual total zero, unlike the
// creation-time records in CreateBudget which compute it from
// transactions. Reads recompute actual totals anyway, so the stored
// value is only a snapshot.
func (s *Service) Sync(action SyncAction, householdID, classificationID int64) error {
	records, err := s.budgets.ListForHousehold(householdID)
	if err != nil {
		return err
	}

	var periods []model.Period
	for _, r := range records {
		p := model.Period{Month: r.Month, Year: r.Year}
		found := false
		for _, existing := range periods {
			if existing == p {
				found = true
				break
			}
		}
		if !found {
			periods = append(periods, p)
		}
	}

	var g errgroup.Group
	for _, period := range periods {
		g.Go(func() error {
			return s.syncPeriod(action, householdID, classificationID, period)
		})
	}
	return g.Wait()
}

func (s *Service) syncPeriod(action SyncAction, householdID, classificationID int64, p model.Period) error {
	record, err := s.budgets.Find(householdID, classificationID, p.Month, p.Year)
	if err != nil {
		return err
	}

	switch {
	case action == SyncAdd && record == nil:
		_, err := s.budgets.Create(model.BudgetRecord{
			Year:             p.Year,
			Month:            p.Month,
			PlannedTotal:     0,
			ActualTotal:      0,
			ClassificationID: classificationID,
			HouseholdID:      householdID,
			CreatorID:        householdID,
		})
		return err
	case action == SyncRemove && record != nil:
		return s.budgets.Delete(record.ID)
	}
	return nil
}

func (s *Service) DeleteAllForHousehold(householdID int64) error {
	return s.budgets.DeleteAllForHousehold(householdID)
}

// actualTotal sums the household's transactions for the classification
// within the calendar month. Amounts are assumed to share one currency.
func (s *Service) actualTotal(classificationID, householdID int64, month, year int) (int64, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	transactions, err := s.transactions.ListByDateScope(householdID, start, end)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, t := range transactions {
		if t.ClassificationID == classificationID {
			total += t.Amount.Value
		}
	}
	return total, nil
}
