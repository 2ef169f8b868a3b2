package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Sentinel errors shared by the service and HTTP layers.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyTitle   = errors.New("title cannot be empty")
)

// Task is the single domain entity: a titled item with an optional due date
// and a completion flag. DueDate is a pointer so a missing date persists as
// SQL NULL and round-trips as such.
type Task struct {
	gorm.Model
	Title     string     `gorm:"not null"`
	DueDate   *time.Time `gorm:"type:date"`
	Completed bool       `gorm:"not null;default:false"`
}
