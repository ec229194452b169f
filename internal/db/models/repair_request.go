// Package models contains database model definitions.
package models

import (
	"time"
)

// Status represents the lifecycle state of a repair request.
type Status string

const (
	// StatusNew is the initial status of every submitted request.
	StatusNew Status = "New"
	// StatusInProgress indicates the repair is being worked on.
	StatusInProgress Status = "In Progress"
	// StatusCompleted indicates the repair is finished.
	StatusCompleted Status = "Completed"
	// StatusOnHold indicates the repair is paused (e.g. waiting for parts).
	StatusOnHold Status = "On Hold"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}

	return false
}

// RepairRequest represents a customer-submitted repair booking.
// The ID is an opaque string assigned at creation and unique within the store.
type RepairRequest struct {
	ID           string    `gorm:"primaryKey;size:32"        json:"id"`
	CustomerName string    `gorm:"size:255;not null"         json:"customer_name"`
	Phone        string    `gorm:"size:50;not null"          json:"phone"`
	Email        string    `gorm:"size:255"                  json:"email,omitempty"`
	Address      string    `gorm:"size:255"                  json:"address,omitempty"`
	Brand        string    `gorm:"size:100;not null"         json:"brand"`
	DeviceType   string    `gorm:"size:100;not null"         json:"device_type"`
	Model        string    `gorm:"size:100;not null"         json:"model"`
	Message      string    `gorm:"type:text"                 json:"message,omitempty"`
	Status       Status    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time `gorm:"index"                     json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
