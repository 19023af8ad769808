package models

import "time"

// Task is a due-dated, completable unit of work owned by a user and
// optionally linked to one of that user's goals.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description string     `json:"description,omitempty" gorm:"type:text" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date,omitempty"` // date precision, normalized to UTC midnight
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	UserID      string     `json:"user_id" gorm:"index;type:varchar(36);not null"`
	GoalID      *string    `json:"goal_id,omitempty" gorm:"index;type:varchar(36)"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskUpdate carries a partial task edit. Nil fields are left untouched.
// A non-nil empty GoalID detaches the task from its goal.
type TaskUpdate struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	GoalID      *string    `json:"goal_id"`
	IsCompleted *bool      `json:"is_completed"`
}
