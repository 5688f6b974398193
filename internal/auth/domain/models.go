package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type User struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string       `json:"-" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
