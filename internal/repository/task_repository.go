package repository

import (
	"errors"

	"gorm.io/gorm"

	"todoweb/internal/domain"
)

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(task *domain.Task) error
	FindByID(id uint) (*domain.Task, error)
	GetAll() ([]domain.Task, error)
	Update(task *domain.Task) error
	Delete(id uint) error
}

// gormTaskRepository implements TaskRepository using GORM.
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetAll returns every task ordered by id so the home page stays stable.
func (r *gormTaskRepository) GetAll() ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes all fields back, including a nil DueDate, so callers can
// clear the date.
func (r *gormTaskRepository) Update(task *domain.Task) error {
	return r.db.Save(task).Error
}

func (r *gormTaskRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
