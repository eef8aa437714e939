package services

import (
	"math"

	"github.com/Aradhik11/task-management-api/internal/models"
	"github.com/Aradhik11/task-management-api/internal/repositories"
)

// TaskService implements the task operations. Reads take a Scope computed
// from the caller's role; mutations always take the caller's own id, so an
// admin cannot change or remove another user's tasks.
type TaskService struct {
	tasks *repositories.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks *repositories.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create persists a task for the given owner. Status defaults to pending.
func (s *TaskService) Create(ownerID uint, req models.CreateTaskRequest) (*models.Task, error) {
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		TimeSpent:   req.TimeSpent,
		UserID:      ownerID,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns one page of tasks in scope together with pagination
// metadata.
func (s *TaskService) List(scope repositories.Scope, q models.ListTasksQuery) ([]models.Task, models.Pagination, error) {
	// Binding fills the defaults for absent params; explicit zeroes still
	// need to fall back.
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	filter := repositories.TaskFilter{
		StatusEquals: q.Status,
		SearchText:   q.Search,
	}

	tasks, total, err := s.tasks.List(scope, filter, q.Page, q.Limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return tasks, models.Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}, nil
}

// GetByID fetches a single task within scope, owner email included.
func (s *TaskService) GetByID(id uint, scope repositories.Scope) (*models.Task, error) {
	return s.tasks.FindByID(id, scope)
}

// Update merges the supplied fields into the caller's own task.
func (s *TaskService) Update(id, ownerID uint, req models.UpdateTaskRequest) (*models.Task, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.TimeSpent != nil {
		updates["time_spent"] = *req.TimeSpent
	}
	return s.tasks.Update(id, ownerID, updates)
}

// Delete removes the caller's own task.
func (s *TaskService) Delete(id, ownerID uint) error {
	deleted, err := s.tasks.Delete(id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return repositories.ErrTaskNotFound
	}
	return nil
}

// AddTime accumulates minutes onto the caller's own task.
func (s *TaskService) AddTime(id, ownerID uint, minutes int) (*models.Task, error) {
	return s.tasks.AddTime(id, ownerID, minutes)
}
