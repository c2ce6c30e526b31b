package payment

import (
	"fmt"
	"time"

	accommodationRepo "stayhub/database/repository/accommodation"
	bookingRepo "stayhub/database/repository/booking"
	paymentRepo "stayhub/database/repository/payment"
	"stayhub/errs"
	"stayhub/models"
	"stayhub/services/notification"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService handles the checkout lifecycle of bookings: session
// creation, the provider success/cancel callbacks, renewal and the
// periodic expiry sweep.
type PaymentService interface {
	CreatePayment(userID string, req models.PaymentRequest) (*models.Payment, error)
	GetPayments(requester *models.User, userIDFilter string, page, size int) ([]models.Payment, error)
	ProcessSuccessfulPayment(sessionID string) (*models.Payment, error)
	ProcessCanceledPayment(sessionID string) (*models.CanceledPaymentResponse, error)
	RenewPaymentSession(userID, paymentID string) (*models.Payment, error)
	CheckExpiredPayments() (int, error)
}

// StripePaymentService is the production implementation.
type StripePaymentService struct {
	Repo              paymentRepo.PaymentRepository
	BookingRepo       bookingRepo.BookingRepository
	AccommodationRepo accommodationRepo.AccommodationRepository
	Gateway           CheckoutGateway
	Publisher         notification.Publisher
}

// CreatePayment opens a checkout session for a PENDING booking owned by
// the caller. Re-requesting while a session is still PENDING returns the
// existing payment unchanged; an EXPIRED payment is renewed in place.
func (s *StripePaymentService) CreatePayment(userID string, req models.PaymentRequest) (*models.Payment, error) {
	booking, err := s.BookingRepo.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errs.NewNotFound("booking", req.BookingID)
	}
	if booking.UserID != userID {
		return nil, errs.NewUnauthorized("you can only pay for your own bookings")
	}

	existing, err := s.Repo.GetByBookingID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.PaymentPaid:
			return nil, errs.NewInvalidStatus("booking %s is already paid", req.BookingID)
		case models.PaymentExpired:
			return s.RenewPaymentSession(userID, existing.ID)
		default:
			return existing, nil
		}
	}

	if booking.Status != models.BookingPending {
		return nil, errs.NewInvalidStatus(
			"payments can only be created for pending bookings, booking %s is %s",
			booking.ID, booking.Status)
	}

	amount, err := s.computeAmount(booking)
	if err != nil {
		return nil, err
	}

	sess, err := s.Gateway.CreateSession(booking.ID, amount)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		Status:     models.PaymentPending,
		SessionID:  sess.ID,
		SessionURL: sess.URL,
		Amount:     amount,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPayments lists payments. Admins may filter by any user or none;
// everyone else is pinned to their own payments regardless of filter.
func (s *StripePaymentService) GetPayments(requester *models.User, userIDFilter string, page, size int) ([]models.Payment, error) {
	if !requester.IsAdmin() {
		return s.Repo.FindByUserID(requester.ID, page, size)
	}
	if userIDFilter == "" {
		return s.Repo.FindAll(page, size)
	}
	return s.Repo.FindByUserID(userIDFilter, page, size)
}

// ProcessSuccessfulPayment handles the provider success callback. The
// remote session must actually report "paid" before the local payment
// is marked PAID.
func (s *StripePaymentService) ProcessSuccessfulPayment(sessionID string) (*models.Payment, error) {
	sess, err := s.Gateway.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PaymentStatus != "paid" {
		return nil, errs.NewInvalidStatus("session %s is not paid yet", sessionID)
	}

	p, err := s.findBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if p.Status == models.PaymentPaid {
		return nil, errs.NewInvalidStatus("payment %s is already paid", p.ID)
	}

	p.Status = models.PaymentPaid
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}

	s.Publisher.Publish(models.EventPaymentSucceeded,
		fmt.Sprintf("Payment successful! Booking %s, amount $%.2f", p.BookingID, p.Amount))

	return p, nil
}

// ProcessCanceledPayment handles the provider cancel callback and maps
// the payment status to a human message.
func (s *StripePaymentService) ProcessCanceledPayment(sessionID string) (*models.CanceledPaymentResponse, error) {
	p, err := s.findBySession(sessionID)
	if err != nil {
		return nil, err
	}

	var message string
	switch p.Status {
	case models.PaymentPaid:
		message = "This payment was already processed"
	case models.PaymentExpired:
		message = "The payment session has expired, please renew it"
	default:
		message = "The payment session is still available, complete the payment within 24 hours"
	}

	return &models.CanceledPaymentResponse{Message: message, Payment: *p}, nil
}

// RenewPaymentSession replaces the checkout session of an EXPIRED (or
// still PENDING) payment with a fresh one and resets it to PENDING.
func (s *StripePaymentService) RenewPaymentSession(userID, paymentID string) (*models.Payment, error) {
	p, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NewNotFound("payment", paymentID)
	}
	if p.UserID != userID {
		return nil, errs.NewUnauthorized("you can only renew your own payments")
	}
	if p.Status == models.PaymentPaid {
		return nil, errs.NewInvalidStatus("payment %s is already paid", p.ID)
	}

	booking, err := s.BookingRepo.GetByID(p.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errs.NewNotFound("booking", p.BookingID)
	}

	amount, err := s.computeAmount(booking)
	if err != nil {
		return nil, err
	}

	sess, err := s.Gateway.CreateSession(booking.ID, amount)
	if err != nil {
		return nil, err
	}

	p.SessionID = sess.ID
	p.SessionURL = sess.URL
	p.Amount = amount
	p.Status = models.PaymentPending
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckExpiredPayments walks every non-PAID payment, asks the provider
// for its session, and marks payments whose session expiry has passed
// as EXPIRED. A remote-lookup failure skips that payment so one flaky
// session cannot stall the whole sweep; the number of payments marked
// is returned.
func (s *StripePaymentService) CheckExpiredPayments() (int, error) {
	payments, err := s.Repo.GetAllForSweep()
	if err != nil {
		return 0, err
	}

	logger := utils.GetLogger()
	now := time.Now().Unix()
	expired := 0
	for i := range payments {
		p := &payments[i]
		if p.Status == models.PaymentPaid || p.Status == models.PaymentExpired {
			continue
		}

		sess, err := s.Gateway.GetSession(p.SessionID)
		if err != nil {
			logger.Warn("payment sweep: session lookup failed, skipping",
				zap.String("paymentID", p.ID),
				zap.String("sessionID", p.SessionID),
				zap.Error(err))
			continue
		}
		if sess.ExpiresAt >= now {
			continue
		}

		p.Status = models.PaymentExpired
		if err := s.Repo.Update(p); err != nil {
			logger.Error("payment sweep: failed to mark payment expired",
				zap.String("paymentID", p.ID), zap.Error(err))
			continue
		}
		expired++
	}
	return expired, nil
}

func (s *StripePaymentService) computeAmount(booking *models.Booking) (float64, error) {
	accommodation, err := s.AccommodationRepo.GetByID(booking.AccommodationID)
	if err != nil {
		return 0, err
	}
	if accommodation == nil {
		return 0, errs.NewBookingData(
			"booking %s references a missing accommodation %s", booking.ID, booking.AccommodationID)
	}
	if accommodation.DailyRate <= 0 {
		return 0, errs.NewBookingData(
			"accommodation %s has no daily rate", accommodation.ID)
	}
	nights := booking.Nights()
	if nights <= 0 {
		return 0, errs.NewBookingData(
			"booking %s has an invalid date range %s..%s",
			booking.ID, booking.CheckInDate, booking.CheckOutDate)
	}
	return accommodation.DailyRate * float64(nights), nil
}

func (s *StripePaymentService) findBySession(sessionID string) (*models.Payment, error) {
	p, err := s.Repo.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NewNotFound("payment with session", sessionID)
	}
	return p, nil
}
