package dashboard

import (
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
)

type ActivityType string

const (
	ActivityCheckIn      ActivityType = "CHECK_IN"
	ActivityCheckOut     ActivityType = "CHECK_OUT"
	ActivityTaskComplete ActivityType = "TASK_COMPLETE"
	ActivityTaskAssigned ActivityType = "TASK_ASSIGNED"
)

type Stats struct {
	TodayTasks     int     `json:"today_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	TaskProgress   float64 `json:"task_progress"`
	CheckedIn      bool    `json:"checked_in"`
	OvertimeHours  float64 `json:"overtime_hours"`
}

type DeadlineItem struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Type  string    `json:"type"`
}

type ActivityItem struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	Timestamp time.Time    `json:"timestamp"`
	Type      ActivityType `json:"type"`
}

type DashboardResponse struct {
	Stats      Stats                          `json:"stats"`
	Today      attendance.CheckInStatus       `json:"today"`
	Week       attendance.WeeklyStats         `json:"week"`
	Deadlines  []DeadlineItem                 `json:"deadlines"`
	Activity   []ActivityItem                 `json:"activity"`
	Statistics performance.StatisticsResponse `json:"statistics"`
	Trend      []performance.HistoryPoint     `json:"trend"`
	FetchedAt  time.Time                      `json:"fetched_at"`
}
