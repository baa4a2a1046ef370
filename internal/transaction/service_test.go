package transaction

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"homeledger/internal/classification"
	"homeledger/internal/database"
	"homeledger/internal/event"
	"homeledger/internal/fault"
	"homeledger/internal/model"
	"homeledger/internal/store"
)

type testEnv struct {
	transactions    *Service
	classifications *classification.Service
	bus             *event.Bus
	expense         model.Classification
	income          model.Classification
}

// newTestEnv seeds household 1 and pins the clock to 2024-01-01.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := event.NewBus(logger)

	classificationStore := store.NewClassificationStore(db)
	transactionStore := store.NewTransactionStore(db)

	classificationSvc := classification.NewService(classificationStore, bus, logger)
	classificationSvc.Register()
	transactionSvc := NewService(transactionStore, classificationStore, logger)
	transactionSvc.Register(bus)
	transactionSvc.now = func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	if err := bus.Publish(event.HouseholdCreated{HouseholdID: 1}); err != nil {
		t.Fatalf("seed household: %v", err)
	}

	env := &testEnv{
		transactions:    transactionSvc,
		classifications: classificationSvc,
		bus:             bus,
	}
	list, err := classificationSvc.List(1)
	if err != nil {
		t.Fatalf("list classifications: %v", err)
	}
	for _, c := range list {
		if c.Type == model.TypeExpense && env.expense.ID == 0 {
			env.expense = c
		}
		if c.Type == model.TypeIncome && env.income.ID == 0 {
			env.income = c
		}
	}
	return env
}

func TestCreateInheritsTypeAndHousehold(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.transactions.Create(CreateInput{
		Name:             "Salary",
		TransactionDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:           model.Amount{Value: 800000, Currency: "PLN"},
		CreatorID:        10,
		ClassificationID: env.income.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Type != model.TypeIncome {
		t.Errorf("type = %s, want %s (inherited from classification)", created.Type, model.TypeIncome)
	}
	if created.HouseholdID != 1 {
		t.Errorf("household = %d, want 1 (inherited from classification)", created.HouseholdID)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactions.Create(CreateInput{
		Name:             "  ",
		TransactionDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ClassificationID: env.expense.ID,
	})
	if !fault.IsKind(err, fault.KindInvalid) {
		t.Errorf("empty name err = %v, want invalid", err)
	}

	_, err = env.transactions.Create(CreateInput{
		Name:             "Ghost",
		TransactionDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ClassificationID: 9999,
	})
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("missing classification err = %v, want not found", err)
	}
}

func cyclicInput(env *testEnv, start time.Time, freq string, occurrences int) CreateCyclicInput {
	return CreateCyclicInput{
		Name:             "Rent",
		StartDate:        start,
		Frequency:        freq,
		Occurrences:      occurrences,
		Amount:           model.Amount{Value: 250000, Currency: "PLN"},
		CreatorID:        10,
		ClassificationID: env.expense.ID,
	}
}

func TestCreateCyclicMonthlyEndOfMonthDrift(t *testing.T) {
	env := newTestEnv(t)

	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	created, err := env.transactions.CreateCyclic(cyclicInput(env, start, "MONTHLY", 3))
	if err != nil {
		t.Fatalf("create cyclic: %v", err)
	}

	want := []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC),
	}
	if len(created) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(created), len(want))
	}
	for i := range want {
		if !created[i].TransactionDate.Equal(want[i]) {
			t.Errorf("date[%d] = %v, want %v", i, created[i].TransactionDate, want[i])
		}
	}
}

func TestCreateCyclicSharesEverythingButDate(t *testing.T) {
	env := newTestEnv(t)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	created, err := env.transactions.CreateCyclic(cyclicInput(env, start, "WEEKLY", 4))
	if err != nil {
		t.Fatalf("create cyclic: %v", err)
	}
	for i, tx := range created {
		if tx.Name != "Rent" || tx.Amount.Value != 250000 || tx.ClassificationID != env.expense.ID {
			t.Errorf("transaction %d diverges from the shared fields: %+v", i, tx)
		}
		if !tx.TransactionDate.Equal(start.AddDate(0, 0, 7*i)) {
			t.Errorf("transaction %d date = %v, want weekly step", i, tx.TransactionDate)
		}
	}
}

func TestCreateCyclicOccurrenceBounds(t *testing.T) {
	env := newTestEnv(t)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := env.transactions.CreateCyclic(cyclicInput(env, start, "MONTHLY", 0)); !fault.IsKind(err, fault.KindInvalid) {
		t.Errorf("zero occurrences err = %v, want invalid", err)
	}
	if _, err := env.transactions.CreateCyclic(cyclicInput(env, start, "MONTHLY", 61)); !fault.IsKind(err, fault.KindInvalid) {
		t.Errorf("61 occurrences err = %v, want invalid", err)
	}
	if _, err := env.transactions.CreateCyclic(cyclicInput(env, start, "MONTHLY", 60)); err != nil {
		t.Errorf("60 occurrences err = %v, want success", err)
	}
}

func TestCreateCyclicRejectsPastStart(t *testing.T) {
	env := newTestEnv(t)

	past := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	if _, err := env.transactions.CreateCyclic(cyclicInput(env, past, "MONTHLY", 3)); !fault.IsKind(err, fault.KindInvalid) {
		t.Errorf("past start err = %v, want invalid", err)
	}
}

func TestCreateCyclicRejectsUnknownFrequency(t *testing.T) {
	env := newTestEnv(t)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := env.transactions.CreateCyclic(cyclicInput(env, start, "HOURLY", 3)); !fault.IsKind(err, fault.KindInvalid) {
		t.Errorf("unknown frequency err = %v, want invalid", err)
	}
	if _, err := env.transactions.CreateCyclic(cyclicInput(env, start, "monthly", 3)); !fault.IsKind(err, fault.KindInvalid) {
		t.Errorf("lowercase frequency err = %v, want invalid", err)
	}
}

func TestUpdateAndDeleteScopedToHousehold(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.transactions.Create(CreateInput{
		Name:             "Groceries",
		TransactionDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:           model.Amount{Value: 1500, Currency: "PLN"},
		CreatorID:        10,
		ClassificationID: env.expense.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.transactions.Update(2, created.ID, "Stolen", created.TransactionDate, created.Amount, nil); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("foreign update err = %v, want not found", err)
	}
	if err := env.transactions.Delete(2, created.ID); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("foreign delete err = %v, want not found", err)
	}

	if err := env.transactions.Delete(1, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.transactions.Get(1, created.ID); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("get deleted err = %v, want not found", err)
	}
}

func TestHouseholdDeletedClearsTransactions(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.transactions.Create(CreateInput{
		Name:             "Groceries",
		TransactionDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:           model.Amount{Value: 1500, Currency: "PLN"},
		CreatorID:        10,
		ClassificationID: env.expense.ID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.bus.Publish(event.HouseholdDeleted{HouseholdID: 1}); err != nil {
		t.Fatalf("publish household.deleted: %v", err)
	}

	list, err := env.transactions.List(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d transactions survive the cascade", len(list))
	}
}
