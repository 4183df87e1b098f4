package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

// CreateEntry создаёт заказ и выдаёт ему номер квитанции.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var in model.EntryInput
	if !h.decodeJSON(w, r, &in) {
		return
	}

	e, err := h.service.CreateEntry(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, e)
}

// ListEntries возвращает все заказы, новые первыми.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListEntries(r.Context(), showAll(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, entries)
}

// PageEntries возвращает страницу заказов.
func (h *Handler) PageEntries(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.PageEntries(r.Context(), intQuery(r, "page"), intQuery(r, "limit"), showAll(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

// SearchEntries ищет заказы по имени клиента или номеру квитанции.
func (h *Handler) SearchEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.SearchEntries(r.Context(), r.URL.Query().Get("q"), showAll(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, entries)
}

// GetEntry возвращает заказ с актуальными ставками налога.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, e)
}

// UpdateEntry частично обновляет заказ.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var patch model.EntryPatch
	if !h.decodeJSON(w, r, &patch) {
		return
	}

	e, err := h.service.UpdateEntry(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, e)
}

// DeleteEntry удаляет заказ.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: "entry deleted"})
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

// SetVisibility устанавливает или, при пустом теле, переключает видимость заказа.
func (h *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	v, err := h.service.SetVisibility(r.Context(), chi.URLParam(r, "id"), req.Visible)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, v)
}
