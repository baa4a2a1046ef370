package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"homeledger/internal/auth"
	"homeledger/internal/budget"
	"homeledger/internal/fault"
)

type BudgetHandler struct {
	budgets *budget.Service
	logger  *slog.Logger
}

func NewBudgetHandler(budgets *budget.Service, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, logger: logger}
}

type createBudgetRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	records, err := h.budgets.CreateBudget(auth.UserID(r.Context()), hid, req.Month, req.Year)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, records)
}

// List returns the records of one period, given as ?month=&year= query
// parameters.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, h.logger, fault.Invalid("invalid month"))
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, h.logger, fault.Invalid("invalid year"))
		return
	}

	records, err := h.budgets.PeriodicRecords(hid, month, year)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Delete removes every budget record of the household, across all
// periods.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.budgets.DeleteAllForHousehold(hid); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRecordRequest struct {
	PlannedTotal int64 `json:"planned_total"`
}

func (h *BudgetHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
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

	var req updateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	record, err := h.budgets.UpdateRecord(hid, id, req.PlannedTotal)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
