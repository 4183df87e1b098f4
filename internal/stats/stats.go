// Package stats группирует продажи по календарным датам магазина.
//
// Все границы дней считаются в поясе Asia/Kolkata независимо от часового
// пояса сервера.
package stats

import (
	"sort"
	"time"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

// TimeZone задаёт имя пояса магазина, используется и в SQL-запросах.
const TimeZone = model.ShopTimeZone

// WeekDays задаёт длину окна недельного графика, включая сегодня.
const WeekDays = 7

const dateLayout = "2006-01-02"

// Location задаёт пояс магазина.
var Location = model.ShopLocation

// StartOfDay возвращает начало календарного дня магазина, содержащего t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// Today возвращает полуинтервал [from, to) текущего дня магазина.
func Today(now time.Time) (time.Time, time.Time) {
	from := StartOfDay(now)
	return from, from.AddDate(0, 0, 1)
}

func dayKey(d time.Time) string {
	// Календарные поля уже соответствуют дате магазина.
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

// BuildRecentOrders сворачивает дневные итоги в годовые, помесячные
// (текущий год, с января по текущий месяц) и недельные ряды. Пустые месяцы и
// дни заполняются нулями.
func BuildRecentOrders(now time.Time, days []model.DailySales) model.RecentOrders {
	local := now.In(Location)

	res := model.RecentOrders{
		YearlyData:  []model.YearlySales{},
		MonthlyData: make([]model.MonthlySales, int(local.Month())),
		WeeklyData:  make([]model.WeeklySales, WeekDays),
	}

	for i := range res.MonthlyData {
		res.MonthlyData[i].Month = i + 1
	}

	weekIndex := make(map[string]int, WeekDays)
	today := StartOfDay(now)
	for i := 0; i < WeekDays; i++ {
		d := today.AddDate(0, 0, i-(WeekDays-1))
		key := d.Format(dateLayout)
		res.WeeklyData[i].Date = key
		weekIndex[key] = i
	}

	years := make(map[int]*model.YearlySales)
	for _, d := range days {
		res.TotalOrders += d.OrderCount

		y, ok := years[d.Day.Year()]
		if !ok {
			y = &model.YearlySales{Year: d.Day.Year()}
			years[d.Day.Year()] = y
		}
		y.TotalSales += d.TotalSales
		y.OrderCount += d.OrderCount

		if d.Day.Year() == local.Year() && int(d.Day.Month()) <= int(local.Month()) {
			m := &res.MonthlyData[int(d.Day.Month())-1]
			m.TotalSales += d.TotalSales
			m.OrderCount += d.OrderCount
		}

		if i, ok := weekIndex[dayKey(d.Day)]; ok {
			res.WeeklyData[i].TotalSales += d.TotalSales
			res.WeeklyData[i].OrderCount += d.OrderCount
		}
	}

	for _, y := range years {
		res.YearlyData = append(res.YearlyData, *y)
	}
	sort.Slice(res.YearlyData, func(i, j int) bool {
		return res.YearlyData[i].Year < res.YearlyData[j].Year
	})

	return res
}
