package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoweb/internal/domain"
)

// fakeRepo is an in-memory TaskRepository for exercising business rules
// without a database.
type fakeRepo struct {
	tasks  map[uint]*domain.Task
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[uint]*domain.Task), nextID: 1}
}

func (f *fakeRepo) Create(task *domain.Task) error {
	task.ID = f.nextID
	f.nextID++
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeRepo) FindByID(id uint) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeRepo) GetAll() ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(f.tasks))
	for id := uint(1); id < f.nextID; id++ {
		if task, ok := f.tasks[id]; ok {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(id uint) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: ""})
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = svc.CreateTask(context.Background(), CreateTaskRequest{Title: "   "})
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	tasks, err := svc.GetAllTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTaskTrimsTitleAndKeepsDueDate(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	due := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	resp, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "  buy milk  ", DueDate: &due})
	require.NoError(t, err)

	assert.Equal(t, "buy milk", resp.Title)
	assert.Equal(t, "2025-12-31", resp.DueDate)
	assert.False(t, resp.Completed)
}

func TestUpdateTaskAppliesSubmittedFields(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "old"})
	require.NoError(t, err)

	title := "new title"
	due := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	completed := true
	resp, err := svc.UpdateTask(context.Background(), created.ID, UpdateTaskRequest{
		Title:     &title,
		DueDate:   &due,
		Completed: &completed,
	})
	require.NoError(t, err)

	assert.Equal(t, "new title", resp.Title)
	assert.Equal(t, "2025-11-30", resp.DueDate)
	assert.True(t, resp.Completed)
}

func TestUpdateTaskBlankTitleKeepsExisting(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "keep me"})
	require.NoError(t, err)

	blank := ""
	resp, err := svc.UpdateTask(context.Background(), created.ID, UpdateTaskRequest{Title: &blank})
	require.NoError(t, err)
	assert.Equal(t, "keep me", resp.Title)
}

func TestUpdateTaskClearsDueDate(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	due := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "dated", DueDate: &due})
	require.NoError(t, err)
	require.Equal(t, "2025-12-31", created.DueDate)

	resp, err := svc.UpdateTask(context.Background(), created.ID, UpdateTaskRequest{ClearDueDate: true})
	require.NoError(t, err)
	assert.Empty(t, resp.DueDate)
}

func TestUpdateUnknownTask(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	title := "x"
	_, err := svc.UpdateTask(context.Background(), 9999, UpdateTaskRequest{Title: &title})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestToggleTaskFlipsCompletion(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "flip me"})
	require.NoError(t, err)
	require.False(t, created.Completed)

	resp, err := svc.ToggleTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Completed)

	resp, err = svc.ToggleTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, resp.Completed)
}

func TestToggleUnknownTask(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	_, err := svc.ToggleTask(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "to delete"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(context.Background(), created.ID))

	_, err = svc.GetTaskByID(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteUnknownTask(t *testing.T) {
	svc := NewTaskService(newFakeRepo())
	require.ErrorIs(t, svc.DeleteTask(context.Background(), 9999), domain.ErrTaskNotFound)
}

func TestGetAllTasksListsInIDOrder(t *testing.T) {
	svc := NewTaskService(newFakeRepo())

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: title})
		require.NoError(t, err)
	}

	tasks, err := svc.GetAllTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "third", tasks[2].Title)
}
