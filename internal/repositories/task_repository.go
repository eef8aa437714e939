package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Aradhik11/task-management-api/internal/models"
)

// TaskRepository persists tasks.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task.
func (r *TaskRepository) Create(t *models.Task) error {
	return r.db.Create(t).Error
}

// List returns one page of tasks matching scope and filter, newest first,
// together with the total number of matching rows before pagination.
func (r *TaskRepository) List(scope Scope, filter TaskFilter, page, limit int) ([]models.Task, int64, error) {
	query := filter.apply(scope.apply(r.db.Model(&models.Task{}))).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// FindByID returns the task with its owner's email joined, honoring the
// scope. A row outside the scope is indistinguishable from a missing one.
func (r *TaskRepository) FindByID(id uint, scope Scope) (*models.Task, error) {
	var t models.Task
	err := scope.apply(r.db).
		Preload("Owner").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update applies a partial column update to the task iff both id and owner
// match, and returns the updated row.
func (r *TaskRepository) Update(id, ownerID uint, updates map[string]interface{}) (*models.Task, error) {
	t, err := r.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.Model(t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Delete removes the task iff both id and owner match, reporting whether a
// row was removed.
func (r *TaskRepository) Delete(id, ownerID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddTime adds minutes on top of the task's accumulated time. The value is
// added, never assigned.
func (r *TaskRepository) AddTime(id, ownerID uint, minutes int) (*models.Task, error) {
	t, err := r.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(t).Update("time_spent", t.TimeSpent+minutes).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// CountByStatus counts scoped tasks, optionally restricted to one status.
func (r *TaskRepository) CountByStatus(scope Scope, status string) (int64, error) {
	query := scope.apply(r.db.Model(&models.Task{}))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StatusTime is the projection the time report aggregates over.
type StatusTime struct {
	Status    string
	TimeSpent int
}

// StatusTimes loads status and accumulated minutes for every scoped task.
func (r *TaskRepository) StatusTimes(scope Scope) ([]StatusTime, error) {
	var rows []StatusTime
	err := scope.apply(r.db.Model(&models.Task{})).
		Select("status", "time_spent").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TaskRepository) findOwned(id, ownerID uint) (*models.Task, error) {
	var t models.Task
	err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}
