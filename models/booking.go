package models

import "time"

// DateLayout is the wire and storage format for booking dates.
// ISO dates compare correctly as strings, which the overlap and
// expiry queries rely on.
const DateLayout = "2006-01-02"

// Booking statuses.
const (
	BookingPending  = "PENDING"
	BookingCanceled = "CANCELED"
	BookingExpired  = "EXPIRED"
)

// Booking represents a reservation of an accommodation for a date range.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	CheckInDate     string    `bson:"check_in_date" json:"checkInDate"`
	CheckOutDate    string    `bson:"check_out_date" json:"checkOutDate"`
	UserID          string    `bson:"user_id" json:"userId"`
	AccommodationID string    `bson:"accommodation_id" json:"accommodationId"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// Nights returns the number of nights between check-in and check-out.
// Returns 0 when either date fails to parse.
func (b *Booking) Nights() int {
	in, err := time.Parse(DateLayout, b.CheckInDate)
	if err != nil {
		return 0
	}
	out, err := time.Parse(DateLayout, b.CheckOutDate)
	if err != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// BookingRequest is the create/update payload.
type BookingRequest struct {
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	AccommodationID string `json:"accommodationId" binding:"required"`
}

// BookingSearchParams filters the admin booking listing. Empty fields
// are omitted from the query.
type BookingSearchParams struct {
	UserID string
	Status string
}
