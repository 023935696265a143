package entities

import "time"

type PharmacyStats struct {
	PharmacyID     int64
	CountPerStatus map[PickupStatus]int64
	TodayCompleted int64
	WeekCompleted  int64
	MonthCompleted int64
	ComputedAt     time.Time
}

// CompletionWindows - начала окон (день, ISO-неделя, календарный месяц),
// посчитанные в часовом поясе статистики.
type CompletionWindows struct {
	DayStart   time.Time
	WeekStart  time.Time
	MonthStart time.Time
}

type CompletionCounts struct {
	Today int64
	Week  int64
	Month int64
}
