// Package server wires stores, services and handlers together and owns
// the route table. The event bus is the only coupling point between the
// household, classification, budget and transaction services.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"homeledger/internal/budget"
	"homeledger/internal/classification"
	"homeledger/internal/event"
	"homeledger/internal/handler"
	"homeledger/internal/household"
	"homeledger/internal/middleware"
	"homeledger/internal/store"
	"homeledger/internal/transaction"
)

type Server struct {
	db              *sql.DB
	bus             *event.Bus
	authH           *handler.AuthHandler
	householdH      *handler.HouseholdHandler
	classificationH *handler.ClassificationHandler
	budgetH         *handler.BudgetHandler
	transactionH    *handler.TransactionHandler
	sessionStore    *store.SessionStore
	householdStore  *store.HouseholdStore
	rateLimiter     *middleware.RateLimiter
	logger          *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	bus := event.NewBus(logger.With("component", "event_bus"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	householdStore := store.NewHouseholdStore(db)
	classificationStore := store.NewClassificationStore(db)
	budgetStore := store.NewBudgetStore(db)
	transactionStore := store.NewTransactionStore(db)

	classificationSvc := classification.NewService(classificationStore, bus, logger.With("component", "classification"))
	classificationSvc.Register()

	budgetSvc := budget.NewService(budgetStore, classificationStore, transactionStore, logger.With("component", "budget"))
	budgetSvc.Register(bus)

	transactionSvc := transaction.NewService(transactionStore, classificationStore, logger.With("component", "transaction"))
	transactionSvc.Register(bus)

	householdSvc := household.NewCoordinator(householdStore, userStore, bus, logger.With("component", "household"))

	return &Server{
		db:              db,
		bus:             bus,
		authH:           handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		householdH:      handler.NewHouseholdHandler(householdSvc, logger.With("component", "household_handler")),
		classificationH: handler.NewClassificationHandler(classificationSvc, logger.With("component", "classification_handler")),
		budgetH:         handler.NewBudgetHandler(budgetSvc, logger.With("component", "budget_handler")),
		transactionH:    handler.NewTransactionHandler(transactionSvc, logger.With("component", "transaction_handler")),
		sessionStore:    sessionStore,
		householdStore:  householdStore,
		rateLimiter:     middleware.NewRateLimiter(),
		logger:          logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes behind RequireAuth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.householdStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Household
	mux.HandleFunc("POST /api/household", s.householdH.Create)
	mux.HandleFunc("GET /api/household", s.householdH.Get)
	mux.HandleFunc("DELETE /api/household", s.householdH.Delete)
	mux.HandleFunc("POST /api/household/invites", s.householdH.SendInvite)
	mux.HandleFunc("POST /api/household/invites/{invite_id}/accept", s.householdH.AcceptInvite)
	mux.HandleFunc("POST /api/household/invites/{invite_id}/decline", s.householdH.DeclineInvite)
	mux.HandleFunc("DELETE /api/household/members/{member_id}", s.householdH.RemoveMember)

	// Classifications
	mux.HandleFunc("GET /api/classifications", s.classificationH.List)
	mux.HandleFunc("POST /api/classifications", s.classificationH.Create)
	mux.HandleFunc("GET /api/classifications/groups", s.classificationH.ListGroups)
	mux.HandleFunc("PUT /api/classifications/{id}/label", s.classificationH.UpdateLabel)
	mux.HandleFunc("DELETE /api/classifications/{id}", s.classificationH.Delete)

	// Budgets
	mux.HandleFunc("POST /api/budgets", s.budgetH.Create)
	mux.HandleFunc("GET /api/budgets", s.budgetH.List)
	mux.HandleFunc("DELETE /api/budgets", s.budgetH.Delete)
	mux.HandleFunc("PUT /api/budgets/records/{id}", s.budgetH.UpdateRecord)

	// Transactions
	mux.HandleFunc("POST /api/transactions", s.transactionH.Create)
	mux.HandleFunc("POST /api/transactions/cyclic", s.transactionH.CreateCyclic)
	mux.HandleFunc("GET /api/transactions", s.transactionH.List)
	mux.HandleFunc("GET /api/transactions/{id}", s.transactionH.Get)
	mux.HandleFunc("PUT /api/transactions/{id}", s.transactionH.Update)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.transactionH.Delete)
}
