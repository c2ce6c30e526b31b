package models

import "time"

// Accommodation types.
const (
	TypeHouse        = "HOUSE"
	TypeApartment    = "APARTMENT"
	TypeCondo        = "CONDO"
	TypeHotel        = "HOTEL"
	TypeVacationHome = "VACATION_HOME"
)

// ValidAccommodationType reports whether t is a known accommodation type.
func ValidAccommodationType(t string) bool {
	switch t {
	case TypeHouse, TypeApartment, TypeCondo, TypeHotel, TypeVacationHome:
		return true
	}
	return false
}

// Accommodation represents a bookable property.
type Accommodation struct {
	ID           string    `bson:"id" json:"id"`
	Type         string    `bson:"type" json:"type"`
	Location     string    `bson:"location" json:"location"`
	Size         string    `bson:"size" json:"size"`
	Amenities    []string  `bson:"amenities" json:"amenities"`
	DailyRate    float64   `bson:"daily_rate" json:"dailyRate"`
	Availability int       `bson:"availability" json:"availability"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// AccommodationRequest is the create/update payload.
type AccommodationRequest struct {
	Type         string   `json:"type" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Size         string   `json:"size" binding:"required"`
	Amenities    []string `json:"amenities"`
	DailyRate    float64  `json:"dailyRate" binding:"required,gt=0"`
	Availability int      `json:"availability" binding:"gte=0"`
}
