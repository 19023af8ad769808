package models

import "time"

// Goal is a user-defined category that tasks may belong to.
// Ownership is set at creation and never transfers.
type Goal struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description string    `json:"description,omitempty" gorm:"type:text" validate:"omitempty,max=2000"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Tasks []Task `json:"-" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}
