package models

import "time"

// AdminUser is an account allowed to sign in to the admin dashboard.
type AdminUser struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName keeps admin accounts apart from the hosted auth service's users table.
func (AdminUser) TableName() string { return "admin_users" }

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is returned after a successful sign-in.
type Session struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ExpiresIn   int64    `json:"expiresIn"`
	User        Identity `json:"user"`
}
