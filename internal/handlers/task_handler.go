package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aradhik11/task-management-api/internal/apperrors"
	"github.com/Aradhik11/task-management-api/internal/models"
	"github.com/Aradhik11/task-management-api/internal/repositories"
	"github.com/Aradhik11/task-management-api/internal/services"
)

// TaskHandler serves the /tasks endpoints.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(validationError(err))
		return
	}

	task, err := h.tasks.Create(c.GetUint(CtxUserID), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

// List handles GET /tasks. Listing is always owner-scoped, admins
// included; only single-task reads and reports widen for admins.
func (h *TaskHandler) List(c *gin.Context) {
	var q models.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(validationError(err))
		return
	}

	tasks, pagination, err := h.tasks.List(repositories.OwnedBy(c.GetUint(CtxUserID)), q)
	if err != nil {
		c.Error(err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks":      tasks,
		"pagination": pagination,
	})
}

// GetByID handles GET /tasks/:id. Admins may read any task; everyone else
// only their own.
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	task, err := h.tasks.GetByID(id, readScope(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update handles PUT /tasks/:id. Ownership is required regardless of role.
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(validationError(err))
		return
	}

	task, err := h.tasks.Update(id, c.GetUint(CtxUserID), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// Delete handles DELETE /tasks/:id. Ownership is required regardless of
// role.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.tasks.Delete(id, c.GetUint(CtxUserID)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// AddTime handles PUT /tasks/:id/time. Zero and negative values are
// rejected; the submitted minutes are added to the stored total, never
// assigned over it.
func (h *TaskHandler) AddTime(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req models.AddTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(validationError(err))
		return
	}
	if req.TimeSpent <= 0 {
		c.Error(apperrors.BadRequest("Time spent must be a non-negative number"))
		return
	}

	task, err := h.tasks.AddTime(id, c.GetUint(CtxUserID), req.TimeSpent)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Time updated successfully",
		"task":    task,
	})
}

// readScope widens to all rows for admins and stays owner-bound for
// everyone else.
func readScope(c *gin.Context) repositories.Scope {
	if c.GetString(CtxUserRole) == models.RoleAdmin {
		return repositories.Unrestricted()
	}
	return repositories.OwnedBy(c.GetUint(CtxUserID))
}
