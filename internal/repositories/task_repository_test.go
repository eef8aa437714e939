package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Aradhik11/task-management-api/internal/models"
	"github.com/Aradhik11/task-management-api/internal/repositories"
	"github.com/Aradhik11/task-management-api/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "hashed", Role: models.RoleUser}
	require.NoError(t, repositories.NewUserRepository(db).Create(u))
	return u
}

func seedTask(t *testing.T, repo *repositories.TaskRepository, ownerID uint, title, status string, minutes int) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:       title,
		Description: "description of " + title,
		Status:      status,
		UserID:      ownerID,
		TimeSpent:   minutes,
	}
	require.NoError(t, repo.Create(task))
	return task
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	users := repositories.NewUserRepository(db)

	require.NoError(t, users.Create(&models.User{Email: "a@x.com", Password: "h", Role: "user"}))
	err := users.Create(&models.User{Email: "a@x.com", Password: "h", Role: "user"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
}

func TestTaskRepository_ListPagination(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")

	for i := 0; i < 25; i++ {
		seedTask(t, tasks, owner.ID, fmt.Sprintf("task %02d", i), models.StatusPending, 0)
	}

	page, total, err := tasks.List(repositories.OwnedBy(owner.ID), repositories.TaskFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total, "total counts rows before pagination")
	assert.Len(t, page, 10)

	last, _, err := tasks.List(repositories.OwnedBy(owner.ID), repositories.TaskFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last, 5)
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")

	first := seedTask(t, tasks, owner.ID, "first", models.StatusPending, 0)
	second := seedTask(t, tasks, owner.ID, "second", models.StatusPending, 0)

	page, _, err := tasks.List(repositories.OwnedBy(owner.ID), repositories.TaskFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, second.ID, page[0].ID)
	assert.Equal(t, first.ID, page[1].ID)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")

	seedTask(t, tasks, owner.ID, "Write REPORT", models.StatusCompleted, 10)
	seedTask(t, tasks, owner.ID, "review code", models.StatusPending, 5)
	seedTask(t, tasks, owner.ID, "groceries", models.StatusPending, 0)

	byStatus, total, err := tasks.List(repositories.OwnedBy(owner.ID),
		repositories.TaskFilter{StatusEquals: models.StatusPending}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byStatus, 2)

	// Case-insensitive, matches title or description.
	bySearch, total, err := tasks.List(repositories.OwnedBy(owner.ID),
		repositories.TaskFilter{SearchText: "report"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Write REPORT", bySearch[0].Title)

	combined, total, err := tasks.List(repositories.OwnedBy(owner.ID),
		repositories.TaskFilter{StatusEquals: models.StatusPending, SearchText: "REVIEW"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, combined, 1)
	assert.Equal(t, "review code", combined[0].Title)
}

func TestTaskRepository_ScopeSeparatesOwners(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	alice := seedUser(t, db, "alice@x.com")
	bob := seedUser(t, db, "bob@x.com")

	aliceTask := seedTask(t, tasks, alice.ID, "alice task", models.StatusPending, 0)
	seedTask(t, tasks, bob.ID, "bob task", models.StatusPending, 0)

	owned, total, err := tasks.List(repositories.OwnedBy(alice.ID), repositories.TaskFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, owned, 1)
	assert.Equal(t, aliceTask.ID, owned[0].ID)

	_, unrestricted, err := tasks.List(repositories.Unrestricted(), repositories.TaskFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unrestricted)

	// Scoped single-task read cannot cross owners.
	_, err = tasks.FindByID(aliceTask.ID, repositories.OwnedBy(bob.ID))
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)

	found, err := tasks.FindByID(aliceTask.ID, repositories.Unrestricted())
	require.NoError(t, err)
	require.NotNil(t, found.Owner)
	assert.Equal(t, "alice@x.com", found.Owner.Email)
}

func TestTaskRepository_UpdatePartial(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")
	task := seedTask(t, tasks, owner.ID, "original", models.StatusPending, 5)

	updated, err := tasks.Update(task.ID, owner.ID, map[string]interface{}{
		"status": models.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "original", updated.Title, "untouched fields keep their value")
	assert.Equal(t, 5, updated.TimeSpent)

	_, err = tasks.Update(task.ID, owner.ID+999, map[string]interface{}{"title": "hijack"})
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")
	task := seedTask(t, tasks, owner.ID, "doomed", models.StatusPending, 0)

	deleted, err := tasks.Delete(task.ID, owner.ID+999)
	require.NoError(t, err)
	assert.False(t, deleted, "wrong owner must not delete")

	deleted, err = tasks.Delete(task.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = tasks.Delete(task.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}

func TestTaskRepository_AddTimeAccumulates(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")
	task := seedTask(t, tasks, owner.ID, "timed", models.StatusInProgress, 0)

	updated, err := tasks.AddTime(task.ID, owner.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.TimeSpent)

	updated, err = tasks.AddTime(task.ID, owner.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.TimeSpent, "time is added, never overwritten")
}

func TestTaskRepository_StatusTimes(t *testing.T) {
	db, _ := testutil.SetupTestAPI(t)
	tasks := repositories.NewTaskRepository(db)
	owner := seedUser(t, db, "a@x.com")

	seedTask(t, tasks, owner.ID, "one", models.StatusPending, 10)
	seedTask(t, tasks, owner.ID, "two", models.StatusPending, 20)
	seedTask(t, tasks, owner.ID, "three", models.StatusCompleted, 60)

	rows, err := tasks.StatusTimes(repositories.OwnedBy(owner.ID))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	total := 0
	for _, row := range rows {
		total += row.TimeSpent
	}
	assert.Equal(t, 90, total)
}
