package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/stats"
)

// DailySales возвращает суммы продаж и количество заказов по календарным дням
// магазина. Поле Day содержит дату магазина в календарных полях.
func (r *PostgresRepository) DailySales(ctx context.Context, showAll bool) ([]model.DailySales, error) {
	w := &whereBuilder{}
	if !showAll {
		w.raw("visible")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT (created_at AT TIME ZONE '`+stats.TimeZone+`')::date AS day,
			COALESCE(SUM((charges->>'totalAmount')::double precision), 0),
			COUNT(*)
		 FROM entries`+w.sql()+`
		 GROUP BY day
		 ORDER BY day`,
		w.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sales: %w", err)
	}
	defer rows.Close()

	var res []model.DailySales
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Day, &d.TotalSales, &d.OrderCount); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		res = append(res, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// EntrySummary считает заказы по статусам, а также ожидаемые к выдаче и
// принятые в интервале [todayFrom, todayTo).
func (r *PostgresRepository) EntrySummary(ctx context.Context, showAll bool, todayFrom, todayTo time.Time) (model.EntryStat, error) {
	w := &whereBuilder{}
	if !showAll {
		w.raw("visible")
	}
	w.args = append(w.args, todayFrom, todayTo,
		string(model.EntryStatusPending), string(model.EntryStatusCollected),
		string(model.EntryStatusProcessedAndPacked), string(model.EntryStatusDelivered))

	var s model.EntryStat
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`SELECT
				COUNT(*) FILTER (WHERE status = $3),
				COUNT(*) FILTER (WHERE status = $4),
				COUNT(*) FILTER (WHERE status = $5),
				COUNT(*) FILTER (WHERE status = $6),
				COUNT(*) FILTER (WHERE expected_delivery_date >= $1 AND expected_delivery_date < $2),
				COUNT(*) FILTER (WHERE created_at >= $1 AND created_at < $2),
				COUNT(*)
			 FROM entries`+w.sql(),
			w.args...,
		).Scan(&s.Pending, &s.Collected, &s.ProcessedAndPacked, &s.Delivered,
			&s.TodayExpected, &s.TodayReceived, &s.Total)
	})
	if err != nil {
		return model.EntryStat{}, fmt.Errorf("summarize entries: %w", err)
	}

	return s, nil
}

// SaveEntryStat записывает единственную строку сводки, создавая её при первом вызове.
func (r *PostgresRepository) SaveEntryStat(ctx context.Context, s model.EntryStat) (model.EntryStat, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO entry_stats (id, pending, collected, processed_and_packed, delivered,
			today_expected, today_received, total, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (id) DO UPDATE SET
			pending              = EXCLUDED.pending,
			collected            = EXCLUDED.collected,
			processed_and_packed = EXCLUDED.processed_and_packed,
			delivered            = EXCLUDED.delivered,
			today_expected       = EXCLUDED.today_expected,
			today_received       = EXCLUDED.today_received,
			total                = EXCLUDED.total,
			updated_at           = EXCLUDED.updated_at
		 RETURNING updated_at`,
		s.Pending, s.Collected, s.ProcessedAndPacked, s.Delivered,
		s.TodayExpected, s.TodayReceived, s.Total,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return model.EntryStat{}, fmt.Errorf("save entry stats: %w", err)
	}
	return s, nil
}

// GetEntryStat возвращает сохранённую сводку.
func (r *PostgresRepository) GetEntryStat(ctx context.Context) (model.EntryStat, error) {
	var s model.EntryStat
	err := r.pool.QueryRow(ctx,
		`SELECT pending, collected, processed_and_packed, delivered,
			today_expected, today_received, total, updated_at
		 FROM entry_stats WHERE id = 1`,
	).Scan(&s.Pending, &s.Collected, &s.ProcessedAndPacked, &s.Delivered,
		&s.TodayExpected, &s.TodayReceived, &s.Total, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return model.EntryStat{}, ErrStatsNotMaterialized
		}
		return model.EntryStat{}, fmt.Errorf("get entry stats: %w", err)
	}
	return s, nil
}
