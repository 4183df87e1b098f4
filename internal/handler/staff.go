package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shoaib7080/dirtoff-backend/internal/middleware"
	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	Staff *model.Staff `json:"staff"`
}

// Login проверяет учётные данные сотрудника, выдаёт токен и устанавливает cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "email and password are required"})
		return
	}

	st, err := h.service.AuthenticateStaff(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.authMiddleware.IssueToken(st.ID, string(st.Role))
	if err != nil {
		h.logger.Error("issue token error", zap.Error(err), zap.String("staffID", st.ID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, token)
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, Staff: st})
}

// RegisterStaff создаёт учётную запись сотрудника.
func (h *Handler) RegisterStaff(w http.ResponseWriter, r *http.Request) {
	var in model.StaffInput
	if !h.decodeJSON(w, r, &in) {
		return
	}

	st, err := h.service.RegisterStaff(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, st)
}

// ListStaff возвращает всех сотрудников.
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListStaff(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// GetStaff возвращает сотрудника по идентификатору.
func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.GetStaff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, st)
}

// DeleteStaff удаляет сотрудника. Удалить собственную учётную запись нельзя.
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if self, ok := middleware.GetStaffIDFromContext(r.Context()); ok && self == id {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "cannot delete own account"})
		return
	}

	if err := h.service.DeleteStaff(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: "staff deleted"})
}
