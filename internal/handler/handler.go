// Package handler содержит HTTP-обработчики API сервиса химчистки.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/shoaib7080/dirtoff-backend/internal/customerapi"
	"github.com/shoaib7080/dirtoff-backend/internal/middleware"
	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/repository"
	"github.com/shoaib7080/dirtoff-backend/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Ping(ctx context.Context) error

	CreateEntry(ctx context.Context, in model.EntryInput) (*model.Entry, error)
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	ListEntries(ctx context.Context, showAll bool) ([]model.Entry, error)
	PageEntries(ctx context.Context, page, limit int, showAll bool) (*model.EntryPage, error)
	SearchEntries(ctx context.Context, query string, showAll bool) ([]model.Entry, error)
	UpdateEntry(ctx context.Context, id string, patch model.EntryPatch) (*model.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, value *bool) (model.Visibility, error)

	RecentOrders(ctx context.Context, showAll bool) (model.RecentOrders, error)
	PendingSummary(ctx context.Context, showAll bool) (model.EntryStat, error)
	PendingByType(ctx context.Context, typ string, page int, showAll bool) (*model.EntryPage, error)
	EntryStats(ctx context.Context) (model.EntryStat, error)
	RecomputeEntryStats(ctx context.Context) (model.EntryStat, error)

	CreateCustomer(ctx context.Context, c model.Customer) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)

	RegisterStaff(ctx context.Context, in model.StaffInput) (*model.Staff, error)
	AuthenticateStaff(ctx context.Context, email, password string) (*model.Staff, error)
	GetStaff(ctx context.Context, id string) (*model.Staff, error)
	ListStaff(ctx context.Context) ([]model.Staff, error)
	DeleteStaff(ctx context.Context, id string) error
}

// Handler реализует HTTP-обработчики API сервиса химчистки.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	allowedOrigins []string
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware, allowedOrigins []string) *Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
		allowedOrigins: allowedOrigins,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// writeError переводит ошибку сервиса в код ответа. Клиентские ошибки
// возвращаются с текстом, внутренние только логируются.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrEntryNotFound),
		errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrStaffNotFound),
		errors.Is(err, repository.ErrStatsNotMaterialized),
		errors.Is(err, service.ErrNoMatches):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrStaffExists):
		status = http.StatusConflict
	case errors.Is(err, customerapi.ErrRateLimited):
		status = http.StatusServiceUnavailable
		var rl *customerapi.RateLimitError
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
		}
		h.logger.Warn("customer directory rate limited", zap.Error(err))
	default:
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, status, messageResponse{Message: err.Error()})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		msg := "invalid request body"
		if errors.Is(err, model.ErrInvalidDate) {
			msg = err.Error()
		}
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: msg})
		return false
	}
	return true
}

func showAll(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("showAll"))
	return err == nil && v
}

// intQuery возвращает целый параметр запроса или 0, если он отсутствует или
// некорректен.
func intQuery(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// Health проверяет доступность хранилища.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		h.writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "database unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}
