package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Phone        string    `gorm:"not null"                 json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Title       string    `gorm:"not null;index"               json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null"  json:"price"`
	Image       *string   `json:"image"`
	CreatedBy   uint      `gorm:"index;not null"               json:"created_by"`
	CreatedAt   time.Time `gorm:"index"                        json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
