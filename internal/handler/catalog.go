package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateCustomer добавляет клиента.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, c)
}

// ListCustomers возвращает клиентов.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// GetCustomer возвращает клиента по идентификатору.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, c)
}

type productRequest struct {
	Name  string  `json:"name"`
	Tax   float64 `json:"tax"`
	Price float64 `json:"price"`
}

// UpsertProduct создаёт или обновляет позицию каталога.
func (h *Handler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	p, err := h.service.UpsertProduct(r.Context(), model.Product{
		Name:  req.Name,
		Tax:   req.Tax,
		Price: req.Price,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, p)
}

// ListProducts возвращает каталог услуг.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}
