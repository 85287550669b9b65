package performance

import "time"

type StatisticsResponse struct {
	Source Source            `json:"source"`
	Stats  ProfileStatistics `json:"stats"`
}

func NewStatisticsResponse(s Statistics) StatisticsResponse {
	return StatisticsResponse{Source: s.Source(), Stats: s.Profile()}
}

type HistoryPoint struct {
	Day                string  `json:"day"`
	Source             Source  `json:"source"`
	PerformanceScore   float64 `json:"performance_score"`
	Attendance         float64 `json:"attendance"`
	TaskCompletionRate float64 `json:"task_completion_rate"`
	ProductivityScore  float64 `json:"productivity_score"`
	OvertimeHours      float64 `json:"overtime_hours"`
}

type OvertimeSummary struct {
	ThisMonth  float64 `json:"this_month"`
	LastMonth  float64 `json:"last_month"`
	YearToDate float64 `json:"year_to_date"`
}

type HistoryResponse struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Points   []HistoryPoint  `json:"points"`
	Trend    float64         `json:"trend"`
	Overtime OvertimeSummary `json:"overtime"`
}
