package handler

import (
	"log/slog"
	"net/http"

	"homeledger/internal/auth"
	"homeledger/internal/household"
)

type HouseholdHandler struct {
	households *household.Coordinator
	logger     *slog.Logger
}

func NewHouseholdHandler(households *household.Coordinator, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{households: households, logger: logger}
}

type createHouseholdRequest struct {
	Name string `json:"name"`
}

func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHouseholdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.households.Create(auth.UserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	hh, err := h.households.Get(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, hh)
}

func (h *HouseholdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.households.Delete(auth.UserID(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sendInviteRequest struct {
	OwnerEmail string `json:"owner_email"`
}

func (h *HouseholdHandler) SendInvite(w http.ResponseWriter, r *http.Request) {
	var req sendInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	hh, err := h.households.SendInvite(auth.UserID(r.Context()), req.OwnerEmail)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, hh)
}

func (h *HouseholdHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	hh, err := h.households.AcceptInvite(auth.UserID(r.Context()), r.PathValue("invite_id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, hh)
}

func (h *HouseholdHandler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	hh, err := h.households.DeclineInvite(auth.UserID(r.Context()), r.PathValue("invite_id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, hh)
}

func (h *HouseholdHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "member_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	hh, err := h.households.RemoveMember(auth.UserID(r.Context()), memberID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, hh)
}
