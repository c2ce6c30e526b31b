package paymentRepo

import "stayhub/models"

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(p *models.Payment) error
	Update(p *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetBySessionID(sessionID string) (*models.Payment, error)
	GetByBookingID(bookingID string) (*models.Payment, error)
	FindByUserID(userID string, page, size int) ([]models.Payment, error)
	FindAll(page, size int) ([]models.Payment, error)

	// GetAllForSweep returns every payment, unpaginated, for the expiry sweep.
	GetAllForSweep() ([]models.Payment, error)

	// ExistsPendingByUserID reports whether the user has any payment in
	// PENDING status. Booking creation is blocked while one exists.
	ExistsPendingByUserID(userID string) (bool, error)
}
