package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	BirthDate    time.Time `json:"birth_date" db:"birth_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DisplayName 展示名称（姓在前），未填写时退回用户名
func (u *User) DisplayName() string {
	if u.LastName == "" && u.FirstName == "" {
		return u.Username
	}
	return u.LastName + " " + u.FirstName
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID       int
	Email    string
	Username string
}
