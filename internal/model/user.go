package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered blog author.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null" validate:"required,min=2,max=150" msg:"Please enter a username between 2 and 150 characters"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null" validate:"required,email" msg:"Please enter a valid email address"`
	Password  string    `json:"-" gorm:"size:255;not null" validate:"required" msg:"Please enter a password"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:UserID" validate:"-"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:UserID" validate:"-"`
}

// BeforeCreate validates the record before it is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	return Validate(u)
}

// Registration is the raw sign-up input, validated before the password is hashed.
type Registration struct {
	Username string `json:"username" form:"username" validate:"required,min=2,max=150" msg:"Please enter a username between 2 and 150 characters"`
	Email    string `json:"email" form:"email" validate:"required,email" msg:"Please enter a valid email address"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=150" msg:"Please enter password with at least 8 characters"`
}
