package handler

import (
	"net/http"
)

// RecentOrders возвращает продажи по годам, месяцам и последним семи дням.
func (h *Handler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.RecentOrders(r.Context(), showAll(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, res)
}

// PendingDeliveries без параметра type возвращает счётчики по статусам, а с
// ним страницу заказов выбранного типа.
func (h *Handler) PendingDeliveries(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")

	if typ == "" {
		summary, err := h.service.PendingSummary(r.Context(), showAll(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, pendingSummary{
			Pending:            summary.Pending,
			Collected:          summary.Collected,
			ProcessedAndPacked: summary.ProcessedAndPacked,
			Delivered:          summary.Delivered,
			TodayExpected:      summary.TodayExpected,
			TodayReceived:      summary.TodayReceived,
			Total:              summary.Total,
		})
		return
	}

	page, err := h.service.PendingByType(r.Context(), typ, intQuery(r, "page"), showAll(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

type pendingSummary struct {
	Pending            int64 `json:"pending"`
	Collected          int64 `json:"collected"`
	ProcessedAndPacked int64 `json:"processedAndPacked"`
	Delivered          int64 `json:"delivered"`
	TodayExpected      int64 `json:"todayExpected"`
	TodayReceived      int64 `json:"todayReceived"`
	Total              int64 `json:"total"`
}

// EntryStats возвращает сохранённую сводку по заказам.
func (h *Handler) EntryStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.EntryStats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, st)
}

// RefreshEntryStats пересчитывает сводку по запросу.
func (h *Handler) RefreshEntryStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.RecomputeEntryStats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, st)
}
