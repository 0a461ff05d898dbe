package models

import (
	"time"
)

type Student struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Course    string    `json:"course" db:"course"`
	Grade     int       `json:"grade" db:"grade"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
