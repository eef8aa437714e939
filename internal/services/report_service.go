package services

import (
	"math"

	"github.com/Aradhik11/task-management-api/internal/models"
	"github.com/Aradhik11/task-management-api/internal/repositories"
)

// ReportService computes the aggregate reporting views.
type ReportService struct {
	tasks *repositories.TaskRepository
}

// NewReportService creates a new ReportService.
func NewReportService(tasks *repositories.TaskRepository) *ReportService {
	return &ReportService{tasks: tasks}
}

// CompletionStats counts scoped tasks per status and derives the
// completion rate, 0 when there are no tasks at all.
func (s *ReportService) CompletionStats(scope repositories.Scope) (*models.CompletionStats, error) {
	total, err := s.tasks.CountByStatus(scope, "")
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.CountByStatus(scope, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.tasks.CountByStatus(scope, models.StatusInProgress)
	if err != nil {
		return nil, err
	}
	pending, err := s.tasks.CountByStatus(scope, models.StatusPending)
	if err != nil {
		return nil, err
	}

	var rate float64
	if total > 0 {
		rate = round2(float64(completed) / float64(total) * 100)
	}

	return &models.CompletionStats{
		TotalTasks:      total,
		CompletedTasks:  completed,
		InProgressTasks: inProgress,
		PendingTasks:    pending,
		CompletionRate:  rate,
	}, nil
}

// TimeStats sums tracked minutes over the scoped tasks. The per-status map
// only contains statuses that actually occur.
func (s *ReportService) TimeStats(scope repositories.Scope) (*models.TimeStats, error) {
	rows, err := s.tasks.StatusTimes(scope)
	if err != nil {
		return nil, err
	}

	total := 0
	byStatus := map[string]int{}
	for _, row := range rows {
		total += row.TimeSpent
		byStatus[row.Status] += row.TimeSpent
	}

	var average float64
	if len(rows) > 0 {
		average = round2(float64(total) / float64(len(rows)))
	}

	return &models.TimeStats{
		TotalTimeSpent:     total,
		AverageTimePerTask: average,
		TimeByStatus:       byStatus,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
