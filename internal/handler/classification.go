package handler

import (
	"log/slog"
	"net/http"

	"homeledger/internal/auth"
	"homeledger/internal/classification"
	"homeledger/internal/fault"
)

type ClassificationHandler struct {
	classifications *classification.Service
	logger          *slog.Logger
}

func NewClassificationHandler(classifications *classification.Service, logger *slog.Logger) *ClassificationHandler {
	return &ClassificationHandler{classifications: classifications, logger: logger}
}

// householdID pulls the caller's household from the auth context. Every
// classification route requires one.
func householdID(r *http.Request) (int64, error) {
	id := auth.HouseholdID(r.Context())
	if id == 0 {
		return 0, fault.NotFound("household does not exist")
	}
	return id, nil
}

func (h *ClassificationHandler) List(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	list, err := h.classifications.List(hid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ClassificationHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	groups, err := h.classifications.ListGroups(hid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

type createClassificationRequest struct {
	GroupID int64  `json:"group_id"`
	Label   string `json:"label"`
}

func (h *ClassificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	hid, err := householdID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createClassificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.classifications.Create(hid, req.GroupID, req.Label)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateLabelRequest struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

func (h *ClassificationHandler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
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

	var req updateLabelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.classifications.UpdateLabel(hid, id, req.Lang, req.Value)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ClassificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.classifications.Delete(hid, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
