package models

import "time"

// User is created on the first successful login from a given email. The
// application never updates or deletes a user afterwards.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:250;not null" json:"name"`
	Email     string    `gorm:"size:250;not null" json:"email"`
	Picture   string    `gorm:"size:250" json:"picture"`
	CreatedAt time.Time `json:"-"`
}
