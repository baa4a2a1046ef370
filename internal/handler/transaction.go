package handler

import (
	"log/slog"
	"net/http"
	"time"

	"homeledger/internal/auth"
	"homeledger/internal/fault"
	"homeledger/internal/model"
	"homeledger/internal/transaction"
)

type TransactionHandler struct {
	transactions *transaction.Service
	logger       *slog.Logger
}

func NewTransactionHandler(transactions *transaction.Service, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: logger}
}

type transactionRequest struct {
	Name             string       `json:"name"`
	TransactionDate  time.Time    `json:"transaction_date"`
	Amount           model.Amount `json:"amount"`
	Comment          *string      `json:"comment"`
	ClassificationID int64        `json:"classification_id"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := householdID(r); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.transactions.Create(transaction.CreateInput{
		Name:             req.Name,
		TransactionDate:  req.TransactionDate,
		Amount:           req.Amount,
		Comment:          req.Comment,
		CreatorID:        auth.UserID(r.Context()),
		ClassificationID: req.ClassificationID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type cyclicTransactionRequest struct {
	Name             string       `json:"name"`
	StartDate        time.Time    `json:"start_date"`
	Frequency        string       `json:"frequency"`
	Occurrences      int          `json:"occurrences"`
	Amount           model.Amount `json:"amount"`
	Comment          *string      `json:"comment"`
	ClassificationID int64        `json:"classification_id"`
}

func (h *TransactionHandler) CreateCyclic(w http.ResponseWriter, r *http.Request) {
	if _, err := householdID(r); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req cyclicTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.transactions.CreateCyclic(transaction.CreateCyclicInput{
		Name:             req.Name,
		StartDate:        req.StartDate,
		Frequency:        req.Frequency,
		Occurrences:      req.Occurrences,
		Amount:           req.Amount,
		Comment:          req.Comment,
		CreatorID:        auth.UserID(r.Context()),
		ClassificationID: req.ClassificationID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	list, err := h.transactions.List(hid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	t, err := h.transactions.Get(hid, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.TransactionDate.IsZero() {
		writeError(w, h.logger, fault.Invalid("transaction date is required"))
		return
	}

	updated, err := h.transactions.Update(hid, id, req.Name, req.TransactionDate, req.Amount, req.Comment)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.transactions.Delete(hid, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
