package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfDay_UsesShopTimeZone(t *testing.T) {
	// 20:00 UTC is already the next day in Kolkata.
	ts := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)

	got := StartOfDay(ts)

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.October, got.Month())
	assert.Equal(t, 18, got.Day())
	assert.Equal(t, time.Date(2026, time.October, 17, 18, 30, 0, 0, time.UTC), got.UTC())
}

func TestToday(t *testing.T) {
	now := time.Date(2026, time.October, 18, 4, 0, 0, 0, time.UTC)

	from, to := Today(now)

	assert.Equal(t, time.Date(2026, time.October, 17, 18, 30, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}

func TestBuildRecentOrders_SingleOrderToday(t *testing.T) {
	now := time.Date(2026, time.October, 18, 10, 0, 0, 0, Location)

	res := BuildRecentOrders(now, []model.DailySales{
		{Day: day(2026, time.October, 18), TotalSales: 500, OrderCount: 1},
	})

	assert.Equal(t, int64(1), res.TotalOrders)

	require.Len(t, res.WeeklyData, WeekDays)
	assert.Equal(t, "2026-10-12", res.WeeklyData[0].Date)
	for _, w := range res.WeeklyData[:WeekDays-1] {
		assert.Zero(t, w.TotalSales, w.Date)
		assert.Zero(t, w.OrderCount, w.Date)
	}
	last := res.WeeklyData[WeekDays-1]
	assert.Equal(t, "2026-10-18", last.Date)
	assert.Equal(t, 500.0, last.TotalSales)
	assert.Equal(t, int64(1), last.OrderCount)

	require.Len(t, res.MonthlyData, 10)
	assert.Equal(t, 500.0, res.MonthlyData[9].TotalSales)
	assert.Equal(t, int64(0), res.MonthlyData[0].OrderCount)

	require.Len(t, res.YearlyData, 1)
	assert.Equal(t, model.YearlySales{Year: 2026, TotalSales: 500, OrderCount: 1}, res.YearlyData[0])
}

func TestBuildRecentOrders_Buckets(t *testing.T) {
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, Location)

	res := BuildRecentOrders(now, []model.DailySales{
		{Day: day(2025, time.December, 31), TotalSales: 100, OrderCount: 2},
		{Day: day(2026, time.January, 15), TotalSales: 50, OrderCount: 1},
		{Day: day(2026, time.February, 24), TotalSales: 70, OrderCount: 1},
		{Day: day(2026, time.February, 25), TotalSales: 30, OrderCount: 3},
		{Day: day(2026, time.March, 2), TotalSales: 20, OrderCount: 1},
	})

	assert.Equal(t, int64(8), res.TotalOrders)

	assert.Equal(t, []model.YearlySales{
		{Year: 2025, TotalSales: 100, OrderCount: 2},
		{Year: 2026, TotalSales: 170, OrderCount: 6},
	}, res.YearlyData)

	assert.Equal(t, []model.MonthlySales{
		{Month: 1, TotalSales: 50, OrderCount: 1},
		{Month: 2, TotalSales: 100, OrderCount: 4},
		{Month: 3, TotalSales: 20, OrderCount: 1},
	}, res.MonthlyData)

	// 2026 не високосный: окно с 24 февраля по 2 марта.
	assert.Equal(t, "2026-02-24", res.WeeklyData[0].Date)
	assert.Equal(t, 70.0, res.WeeklyData[0].TotalSales)
	assert.Equal(t, 30.0, res.WeeklyData[1].TotalSales)
	assert.Equal(t, "2026-03-02", res.WeeklyData[6].Date)
	assert.Equal(t, 20.0, res.WeeklyData[6].TotalSales)
}

func TestBuildRecentOrders_Empty(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 30, 0, 0, Location)

	res := BuildRecentOrders(now, nil)

	assert.Zero(t, res.TotalOrders)
	assert.Empty(t, res.YearlyData)
	assert.Len(t, res.MonthlyData, 1)
	assert.Len(t, res.WeeklyData, WeekDays)
	assert.Equal(t, "2025-12-26", res.WeeklyData[0].Date)
}
