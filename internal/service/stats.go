package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/stats"
)

// PendingPageSize задаёт размер страницы выборки по типу на дашборде выдачи.
const PendingPageSize = 5

// Типы выборки дашборда выдачи помимо статусов заказа.
const (
	PendingTypeTodayExpected = "todayExpected"
	PendingTypeTodayReceived = "todayReceived"
)

// RecentOrders возвращает продажи по годам, месяцам текущего года и последним
// семи дням в часовом поясе магазина.
func (s *Service) RecentOrders(ctx context.Context, showAll bool) (model.RecentOrders, error) {
	days, err := s.repo.DailySales(ctx, showAll)
	if err != nil {
		return model.RecentOrders{}, err
	}
	return stats.BuildRecentOrders(s.now(), days), nil
}

// RecomputeEntryStats пересчитывает и сохраняет сводку по видимым заказам.
func (s *Service) RecomputeEntryStats(ctx context.Context) (model.EntryStat, error) {
	from, to := stats.Today(s.now())

	summary, err := s.repo.EntrySummary(ctx, false, from, to)
	if err != nil {
		return model.EntryStat{}, err
	}

	saved, err := s.repo.SaveEntryStat(ctx, summary)
	if err != nil {
		return model.EntryStat{}, err
	}
	return saved, nil
}

// refreshStats пересчитывает сводку после изменения заказа. Ошибка только
// логируется: изменение уже сохранено и не откатывается.
func (s *Service) refreshStats(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.statsTimeout)
	defer cancel()

	if _, err := s.RecomputeEntryStats(ctx); err != nil {
		s.logger.Warn("entry stats recompute failed", zap.Error(err))
	}
}

// EntryStats возвращает сохранённую сводку.
func (s *Service) EntryStats(ctx context.Context) (model.EntryStat, error) {
	return s.repo.GetEntryStat(ctx)
}

// PendingSummary считает заказы по статусам и на сегодня без сохранения.
func (s *Service) PendingSummary(ctx context.Context, showAll bool) (model.EntryStat, error) {
	from, to := stats.Today(s.now())
	return s.repo.EntrySummary(ctx, showAll, from, to)
}

// PendingByType возвращает страницу заказов указанного типа, новые первыми.
func (s *Service) PendingByType(ctx context.Context, typ string, page int, showAll bool) (*model.EntryPage, error) {
	f := model.EntryFilter{ShowAll: showAll}

	switch typ {
	case PendingTypeTodayExpected:
		from, to := stats.Today(s.now())
		f.ExpectedFrom, f.ExpectedTo = &from, &to
	case PendingTypeTodayReceived:
		from, to := stats.Today(s.now())
		f.CreatedFrom, f.CreatedTo = &from, &to
	default:
		status := model.EntryStatus(typ)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidArgument, typ)
		}
		f.Status = status
	}

	return s.pageEntries(ctx, f, page, PendingPageSize)
}

// RunStatsRefresher периодически пересчитывает сводку, чтобы счётчики «на
// сегодня» сменялись в полночь магазина и без изменений заказов. Блокируется до
// отмены контекста.
func (s *Service) RunStatsRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshStats(ctx)
		}
	}
}
