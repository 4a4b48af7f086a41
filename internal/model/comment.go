package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reader's reply attached to a post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"comment" gorm:"column:comment;type:text;not null" validate:"required" msg:"Please enter a comment"`
	UserID    uint      `json:"user_id" gorm:"not null;index" validate:"required" msg:"A comment must belong to a user"`
	PostID    uint      `json:"post_id" gorm:"not null;index" validate:"required" msg:"A comment must belong to a post"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID" validate:"-"`
	Post Post `json:"-" gorm:"foreignKey:PostID" validate:"-"`
}

// BeforeCreate validates the record before it is inserted.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	return Validate(c)
}
