package domain

import (
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomerRequest doubles as the update payload: updates are full
// replacements of the mutable attributes.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Gender  string `json:"gender" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}
