package cron

import (
	"context"
	"fmt"
	"time"

	"stayhub/config"
	accommodationRepo "stayhub/database/repository/accommodation"
	userRepo "stayhub/database/repository/user"
	"stayhub/models"
	bookingService "stayhub/services/booking"
	"stayhub/services/notification"
	paymentService "stayhub/services/payment"
	"stayhub/utils"

	"go.uber.org/zap"
)

// Sweeper runs the periodic booking and payment expiry jobs.
type Sweeper struct {
	Bookings          bookingService.BookingService
	Payments          paymentService.PaymentService
	AccommodationRepo accommodationRepo.AccommodationRepository
	UserRepo          userRepo.UserRepository
	Publisher         notification.Publisher
}

// Start launches both sweep loops. They stop when ctx is canceled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.runBookingSweep(ctx)
	go s.runPaymentSweep(ctx)
}

func (s *Sweeper) runBookingSweep(ctx context.Context) {
	interval := time.Duration(config.AppConfig.BookingSweepMinutes) * time.Minute
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpiredBookings()
		}
	}
}

func (s *Sweeper) runPaymentSweep(ctx context.Context) {
	interval := time.Duration(config.AppConfig.PaymentSweepMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Payments.CheckExpiredPayments(); err != nil {
				utils.GetLogger().Error("payment sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepExpiredBookings marks overdue bookings EXPIRED and queues one
// notification per booking, or a single "nothing to do" notice.
func (s *Sweeper) SweepExpiredBookings() {
	logger := utils.GetLogger()

	expired, err := s.Bookings.MarkBookingsAsExpired()
	if err != nil {
		logger.Error("booking sweep failed", zap.Error(err))
		return
	}

	if len(expired) == 0 {
		s.Publisher.Publish(models.EventBookingExpired, "No expired bookings today!")
		return
	}

	for i := range expired {
		s.Publisher.Publish(models.EventBookingExpired, s.expiredMessage(&expired[i]))
	}
	logger.Info("booking sweep complete", zap.Int("expired", len(expired)))
}

func (s *Sweeper) expiredMessage(b *models.Booking) string {
	accommodationType := b.AccommodationID
	if a, err := s.AccommodationRepo.GetByID(b.AccommodationID); err == nil && a != nil {
		accommodationType = a.Type
	}
	guest := b.UserID
	if u, err := s.UserRepo.GetByID(b.UserID); err == nil && u != nil {
		guest = u.Email
	}
	return fmt.Sprintf("Booking expired!\nAccommodation: %s\nGuest: %s\nCheck-out: %s\nBooking ID: %s",
		accommodationType, guest, b.CheckOutDate, b.ID)
}
