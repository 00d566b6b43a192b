package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}
