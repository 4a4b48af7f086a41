package model

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog entry written by a user.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:150" validate:"omitempty,min=2,max=150" msg:"Please enter a title between 2 and 150 characters"`
	Body      string    `json:"body" gorm:"type:text;not null" validate:"required" msg:"Please enter some text for the post"`
	UserID    uint      `json:"user_id" gorm:"not null;index" validate:"required" msg:"A post must belong to a user"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User     User      `json:"user" gorm:"foreignKey:UserID" validate:"-"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID" validate:"-"`
}

// BeforeCreate validates the record before it is inserted.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	return Validate(p)
}
