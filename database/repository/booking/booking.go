package bookingRepo

import "stayhub/models"

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(b *models.Booking) error
	Update(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	FindByUserID(userID string, page, size int) ([]models.Booking, error)
	Find(params models.BookingSearchParams, page, size int) ([]models.Booking, error)

	// FindOverlapping returns non-canceled bookings of the accommodation
	// whose inclusive [check-in, check-out] range intersects the given
	// range. excludeID, when non-empty, removes that booking from the
	// result so an update does not conflict with its own row.
	FindOverlapping(accommodationID, checkIn, checkOut, excludeID string) ([]models.Booking, error)

	// FindExpiredCandidates returns bookings whose check-out date is
	// strictly before threshold and whose status is neither CANCELED nor
	// EXPIRED, so the expiry sweep is idempotent.
	FindExpiredCandidates(threshold string) ([]models.Booking, error)
}
