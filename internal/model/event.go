package model

import "time"

type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusActive   EventStatus = "active"
	EventStatusFinished EventStatus = "finished"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusFinished:
		return true
	}
	return false
}

// Event 漫展場次
type Event struct {
	ID        int         `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	EventDate string      `json:"date" db:"event_date"`
	Location  *string     `json:"location,omitempty" db:"location"`
	Status    EventStatus `json:"status" db:"status"`
	// vendor 密碼雜湊不回傳給前端
	VendorPassword *string   `json:"-" db:"vendor_password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreateEventRequest struct {
	Name           string  `json:"name" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	Location       *string `json:"location"`
	VendorPassword *string `json:"vendor_password"`
}

type UpdateEventStatusRequest struct {
	Status EventStatus `json:"status" binding:"required"`
}

type UpdateEventParams struct {
	Name     *string
	Date     *string
	Location *string
	// VendorPassword is the bcrypt hash, already derived by the service.
	VendorPassword *string
}
