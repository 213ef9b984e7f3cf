package model

import (
	"time"
)

// ClassRecord is the persisted document for one class session. Descriptive
// fields are set on first creation and never updated by later bookings.
type ClassRecord struct {
	ClassID   string    `json:"classId"`
	ClassName string    `json:"className"`
	Day       string    `json:"day"`
	Time      string    `json:"time"`
	Location  string    `json:"location"`
	MaxSpots  int       `json:"maxSpots"`
	Bookings  []Booking `json:"bookings"`
}

// Booking is one reservation entry inside a ClassRecord. Email is stored
// lowercased; insertion order is reservation order.
type Booking struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	BookedAt time.Time `json:"bookedAt"`
}

// BookingRequest is the POST payload. The descriptive fields and MaxSpots
// only matter on the first booking for a class.
type BookingRequest struct {
	ClassID   string `json:"classId" validate:"required"`
	ClassName string `json:"className"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	MaxSpots  int    `json:"maxSpots"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// Availability is the public view of one class. Available is a raw
// subtraction and may go negative on a corrupted record.
type Availability struct {
	ClassID   string `json:"classId"`
	Booked    int    `json:"booked"`
	MaxSpots  int    `json:"maxSpots"`
	Available int    `json:"available"`
}

type BookingConfirmation struct {
	Message  string `json:"message"`
	Booked   int    `json:"booked"`
	MaxSpots int    `json:"maxSpots"`
}
