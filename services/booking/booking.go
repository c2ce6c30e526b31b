package booking

import (
	"time"

	accommodationRepo "stayhub/database/repository/accommodation"
	bookingRepo "stayhub/database/repository/booking"
	paymentRepo "stayhub/database/repository/payment"
	userRepo "stayhub/database/repository/user"
	"stayhub/errs"
	"stayhub/models"
	"stayhub/services/notification"

	"github.com/google/uuid"
)

// BookingService handles the booking lifecycle: creation, queries,
// updates, cancellation and the expiry sweep.
type BookingService interface {
	CreateBooking(userID string, req models.BookingRequest) (*models.Booking, error)
	GetBookingByID(requesterID, id string) (*models.Booking, error)
	GetBookingsByUserAndStatus(params models.BookingSearchParams, page, size int) ([]models.Booking, error)
	GetMyBookings(userID string, page, size int) ([]models.Booking, error)
	UpdateBooking(id string, req models.BookingRequest) (*models.Booking, error)
	CancelBooking(requesterID, id string) error
	MarkBookingsAsExpired() ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo              bookingRepo.BookingRepository
	AccommodationRepo accommodationRepo.AccommodationRepository
	UserRepo          userRepo.UserRepository
	PaymentRepo       paymentRepo.PaymentRepository
	Publisher         notification.Publisher

	locks accommodationLocks
}

// CreateBooking validates dates, ownership preconditions and overlap,
// then persists a PENDING booking and queues a creation notice.
func (s *DefaultBookingService) CreateBooking(userID string, req models.BookingRequest) (*models.Booking, error) {
	if err := validateDates(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}

	accommodation, err := s.AccommodationRepo.GetByID(req.AccommodationID)
	if err != nil {
		return nil, err
	}
	if accommodation == nil {
		return nil, errs.NewNotFound("accommodation", req.AccommodationID)
	}

	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFound("user", userID)
	}

	pending, err := s.PaymentRepo.ExistsPendingByUserID(userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errs.NewInvalidStatus(
			"user %s has a pending payment and cannot create new bookings", userID)
	}

	// The overlap check and the insert must be atomic per accommodation,
	// otherwise two concurrent requests can both pass the check.
	unlock := s.locks.lock(accommodation.ID)
	defer unlock()

	if err := s.ensureNoOverlap(accommodation.ID, req.CheckInDate, req.CheckOutDate, ""); err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		UserID:          userID,
		AccommodationID: accommodation.ID,
		Status:          models.BookingPending,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}

	s.Publisher.Publish(models.EventBookingCreated, "New booking created: "+b.ID)

	return b, nil
}

// GetBookingByID returns a booking to its owner or an admin.
func (s *DefaultBookingService) GetBookingByID(requesterID, id string) (*models.Booking, error) {
	b, err := s.findBooking(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateAccess(requesterID, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookingsByUserAndStatus lists bookings matching the optional
// userId/status filter. Admin-only, enforced at the route.
func (s *DefaultBookingService) GetBookingsByUserAndStatus(params models.BookingSearchParams, page, size int) ([]models.Booking, error) {
	if params.Status != "" && !validStatus(params.Status) {
		return nil, errs.NewValidation("unknown booking status: %s", params.Status)
	}
	return s.Repo.Find(params, page, size)
}

// GetMyBookings lists the caller's own bookings.
func (s *DefaultBookingService) GetMyBookings(userID string, page, size int) ([]models.Booking, error) {
	return s.Repo.FindByUserID(userID, page, size)
}

// UpdateBooking re-validates the new dates against the other bookings
// of the same accommodation and applies them.
func (s *DefaultBookingService) UpdateBooking(id string, req models.BookingRequest) (*models.Booking, error) {
	b, err := s.findBooking(id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingCanceled {
		return nil, errs.NewInvalidStatus("cannot update a canceled booking with id: %s", id)
	}
	// A booking stays pinned to its accommodation; only the dates move.
	if req.AccommodationID != b.AccommodationID {
		return nil, errs.NewValidation("booking %s cannot be moved to accommodation %s", id, req.AccommodationID)
	}
	if err := validateDates(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(b.AccommodationID)
	defer unlock()

	if err := s.ensureNoOverlap(b.AccommodationID, req.CheckInDate, req.CheckOutDate, b.ID); err != nil {
		return nil, err
	}

	b.CheckInDate = req.CheckInDate
	b.CheckOutDate = req.CheckOutDate
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking flips a booking to CANCELED exactly once and queues a
// cancellation notice.
func (s *DefaultBookingService) CancelBooking(requesterID, id string) error {
	b, err := s.findBooking(id)
	if err != nil {
		return err
	}
	if err := s.validateAccess(requesterID, b); err != nil {
		return err
	}
	if b.Status == models.BookingCanceled {
		return errs.NewInvalidStatus("booking with id: %s has already been canceled", id)
	}

	b.Status = models.BookingCanceled
	if err := s.Repo.Update(b); err != nil {
		return err
	}

	s.Publisher.Publish(models.EventBookingCanceled, "Booking canceled: "+b.ID)

	return nil
}

// MarkBookingsAsExpired sweeps bookings whose check-out date passed
// before yesterday and marks them EXPIRED. The candidate query skips
// CANCELED and EXPIRED rows, so re-running is a no-op.
func (s *DefaultBookingService) MarkBookingsAsExpired() ([]models.Booking, error) {
	threshold := time.Now().AddDate(0, 0, -1).Format(models.DateLayout)

	candidates, err := s.Repo.FindExpiredCandidates(threshold)
	if err != nil {
		return nil, err
	}

	expired := make([]models.Booking, 0, len(candidates))
	for i := range candidates {
		candidates[i].Status = models.BookingExpired
		if err := s.Repo.Update(&candidates[i]); err != nil {
			return nil, err
		}
		expired = append(expired, candidates[i])
	}
	return expired, nil
}

func (s *DefaultBookingService) findBooking(id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errs.NewNotFound("booking", id)
	}
	return b, nil
}

// validateAccess allows the booking owner and admins.
func (s *DefaultBookingService) validateAccess(requesterID string, b *models.Booking) error {
	requester, err := s.UserRepo.GetByID(requesterID)
	if err != nil {
		return err
	}
	if requester == nil {
		return errs.NewNotFound("user", requesterID)
	}
	if !requester.IsAdmin() && b.UserID != requesterID {
		return errs.NewAccessDenied("you can only interact with your own bookings")
	}
	return nil
}

func (s *DefaultBookingService) ensureNoOverlap(accommodationID, checkIn, checkOut, excludeID string) error {
	existing, err := s.Repo.FindOverlapping(accommodationID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errs.NewConflict("accommodation %s is already booked from %s to %s",
			accommodationID, checkIn, checkOut)
	}
	return nil
}

func validateDates(checkIn, checkOut string) error {
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return errs.NewValidation("invalid check-in date: %s", checkIn)
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return errs.NewValidation("invalid check-out date: %s", checkOut)
	}
	if !out.After(in) {
		return errs.NewValidation("check-out date must be after check-in date")
	}
	today, _ := time.Parse(models.DateLayout, time.Now().Format(models.DateLayout))
	if !in.After(today) {
		return errs.NewValidation("check-in date must be in the future")
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingCanceled, models.BookingExpired:
		return true
	}
	return false
}
