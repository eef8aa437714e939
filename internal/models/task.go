package models

import "time"

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task is a unit of work owned by exactly one user. TimeSpent is counted
// in minutes and never goes below zero.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	UserID      uint       `gorm:"not null;index" json:"userId"`
	TimeSpent   int        `gorm:"not null;default:0" json:"timeSpent"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Owner       *TaskOwner `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TaskOwner is the slim owner projection joined onto single-task reads.
// Only the email crosses the wire.
type TaskOwner struct {
	ID    uint   `json:"-"`
	Email string `json:"email"`
}

func (TaskOwner) TableName() string {
	return "users"
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	TimeSpent   int    `json:"timeSpent" binding:"omitempty,gte=0"`
}

// UpdateTaskRequest carries a partial update; nil fields are left alone.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	TimeSpent   *int    `json:"timeSpent" binding:"omitempty,gte=0"`
}

type AddTimeRequest struct {
	TimeSpent int `json:"timeSpent"`
}

type ListTasksQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Search string `form:"search"`
}

// Pagination describes one page of a task listing. Total counts matching
// rows before the page window is applied.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type CompletionStats struct {
	TotalTasks      int64   `json:"totalTasks"`
	CompletedTasks  int64   `json:"completedTasks"`
	InProgressTasks int64   `json:"inProgressTasks"`
	PendingTasks    int64   `json:"pendingTasks"`
	CompletionRate  float64 `json:"completionRate"`
}

// TimeStats aggregates tracked minutes. TimeByStatus only has keys for
// statuses that actually occur in the scoped task set.
type TimeStats struct {
	TotalTimeSpent     int            `json:"totalTimeSpent"`
	AverageTimePerTask float64        `json:"averageTimePerTask"`
	TimeByStatus       map[string]int `json:"timeByStatus"`
}
