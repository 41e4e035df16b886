package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id"`
	NIS          string    `json:"nis" db:"nis"`                       // Student identification number (8 chars, unique)
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`                   // Unique
	Phone        *string   `json:"phone" db:"phone"`                   // Optional, unique when present
	Address      *string   `json:"address" db:"address"`               // Optional
	DateOfBirth  time.Time `json:"-" db:"date_of_birth"`
	PlaceOfBirth string    `json:"place_of_birth" db:"place_of_birth"`
	ClassName    string    `json:"class_name" db:"class_name"`
	CreatedBy    int64     `json:"created_by" db:"created_by"`         // User that created the record, stamped at creation
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Relation (populated when needed)
	Creator *User `json:"creator,omitempty"` // The user referenced by CreatedBy
}
