package model

import "time"

// EntryStat содержит денормализованную сводку по заказам для дашборда.
type EntryStat struct {
	Pending            int64     `json:"pending"`
	Collected          int64     `json:"collected"`
	ProcessedAndPacked int64     `json:"processedAndPacked"`
	Delivered          int64     `json:"delivered"`
	TodayExpected      int64     `json:"todayExpected"`
	TodayReceived      int64     `json:"todayReceived"`
	Total              int64     `json:"total"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DailySales описывает продажи за один календарный день в часовом поясе магазина.
type DailySales struct {
	Day        time.Time
	TotalSales float64
	OrderCount int64
}

// YearlySales описывает продажи за календарный год.
type YearlySales struct {
	Year       int     `json:"year"`
	TotalSales float64 `json:"totalSales"`
	OrderCount int64   `json:"orderCount"`
}

// MonthlySales описывает продажи за месяц текущего года.
type MonthlySales struct {
	Month      int     `json:"month"`
	TotalSales float64 `json:"totalSales"`
	OrderCount int64   `json:"orderCount"`
}

// WeeklySales описывает продажи за один из последних семи дней.
type WeeklySales struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"totalSales"`
	OrderCount int64   `json:"orderCount"`
}

// RecentOrders содержит данные дашборда продаж.
type RecentOrders struct {
	TotalOrders int64          `json:"totalOrders"`
	YearlyData  []YearlySales  `json:"yearlyData"`
	MonthlyData []MonthlySales `json:"monthlyData"`
	WeeklyData  []WeeklySales  `json:"weeklyData"`
}
