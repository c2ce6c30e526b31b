package booking

import (
	"errors"
	"testing"
	"time"

	"stayhub/errs"
	"stayhub/models"
)

// date returns today+offset days in the wire format.
func date(offsetDays int) string {
	return time.Now().AddDate(0, 0, offsetDays).Format(models.DateLayout)
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) FindByUserID(userID string, page, size int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Find(params models.BookingSearchParams, page, size int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if params.UserID != "" && b.UserID != params.UserID {
			continue
		}
		if params.Status != "" && b.Status != params.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) FindOverlapping(accommodationID, checkIn, checkOut, excludeID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.AccommodationID != accommodationID || b.Status == models.BookingCanceled {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.CheckInDate <= checkOut && b.CheckOutDate >= checkIn {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindExpiredCandidates(threshold string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingCanceled || b.Status == models.BookingExpired {
			continue
		}
		if b.CheckOutDate < threshold {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeAccommodationRepo struct {
	accommodations map[string]*models.Accommodation
}

func (r *fakeAccommodationRepo) Create(a *models.Accommodation) error { r.accommodations[a.ID] = a; return nil }
func (r *fakeAccommodationRepo) Update(a *models.Accommodation) error { r.accommodations[a.ID] = a; return nil }
func (r *fakeAccommodationRepo) Delete(id string) error               { delete(r.accommodations, id); return nil }
func (r *fakeAccommodationRepo) GetByID(id string) (*models.Accommodation, error) {
	return r.accommodations[id], nil
}
func (r *fakeAccommodationRepo) GetAll(page, size int) ([]models.Accommodation, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Update(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := r.GetByEmail(email)
	return u != nil, nil
}

type fakePaymentRepo struct {
	pendingUsers map[string]bool
}

func (r *fakePaymentRepo) Create(p *models.Payment) error                       { return nil }
func (r *fakePaymentRepo) Update(p *models.Payment) error                       { return nil }
func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error)           { return nil, nil }
func (r *fakePaymentRepo) GetBySessionID(id string) (*models.Payment, error)    { return nil, nil }
func (r *fakePaymentRepo) GetByBookingID(id string) (*models.Payment, error)    { return nil, nil }
func (r *fakePaymentRepo) FindByUserID(string, int, int) ([]models.Payment, error) { return nil, nil }
func (r *fakePaymentRepo) FindAll(int, int) ([]models.Payment, error)           { return nil, nil }
func (r *fakePaymentRepo) GetAllForSweep() ([]models.Payment, error)            { return nil, nil }
func (r *fakePaymentRepo) ExistsPendingByUserID(userID string) (bool, error) {
	return r.pendingUsers[userID], nil
}

type fakePublisher struct {
	messages []string
}

func (p *fakePublisher) Publish(kind, message string) {
	p.messages = append(p.messages, message)
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakePaymentRepo, *fakePublisher) {
	bookings := newFakeBookingRepo()
	payments := &fakePaymentRepo{pendingUsers: make(map[string]bool)}
	publisher := &fakePublisher{}
	svc := &DefaultBookingService{
		Repo: bookings,
		AccommodationRepo: &fakeAccommodationRepo{accommodations: map[string]*models.Accommodation{
			"acc-10": {ID: "acc-10", Type: models.TypeHouse, DailyRate: 150},
		}},
		UserRepo: &fakeUserRepo{users: map[string]*models.User{
			"alice": {ID: "alice", Email: "alice@example.com", Roles: []string{models.RoleCustomer}},
			"bob":   {ID: "bob", Email: "bob@example.com", Roles: []string{models.RoleCustomer}},
			"admin": {ID: "admin", Email: "admin@example.com", Roles: []string{models.RoleAdmin}},
		}},
		PaymentRepo: payments,
		Publisher:   publisher,
	}
	return svc, bookings, payments, publisher
}

func TestCreateBookingConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()

	first, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(16),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if first.Status != models.BookingPending {
		t.Fatalf("expected PENDING status, got %s", first.Status)
	}

	// Overlapping range for the same accommodation must conflict.
	_, err = svc.CreateBooking("bob", models.BookingRequest{
		CheckInDate:     date(14),
		CheckOutDate:    date(19),
		AccommodationID: "acc-10",
	})
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	// A disjoint range must succeed.
	if _, err := svc.CreateBooking("bob", models.BookingRequest{
		CheckInDate:     date(40),
		CheckOutDate:    date(46),
		AccommodationID: "acc-10",
	}); err != nil {
		t.Fatalf("disjoint booking failed: %v", err)
	}
}

func TestCreateBookingSharedBoundaryConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(16),
		AccommodationID: "acc-10",
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Check-in on the existing check-out day still conflicts: the
	// boundary is inclusive on both sides.
	_, err := svc.CreateBooking("bob", models.BookingRequest{
		CheckInDate:     date(16),
		CheckOutDate:    date(20),
		AccommodationID: "acc-10",
	})
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error for shared boundary, got %v", err)
	}
}

func TestCreateBookingBlockedByPendingPayment(t *testing.T) {
	svc, _, payments, _ := newTestService()
	payments.pendingUsers["alice"] = true

	_, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		AccommodationID: "acc-10",
	})
	var invalidStatus *errs.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestCreateBookingDateValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"check-out before check-in", date(10), date(8)},
		{"check-out equals check-in", date(10), date(10)},
		{"check-in in the past", date(-5), date(5)},
		{"check-in today", date(0), date(5)},
		{"garbage check-in", "not-a-date", date(5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking("alice", models.BookingRequest{
				CheckInDate:     tc.checkIn,
				CheckOutDate:    tc.checkOut,
				AccommodationID: "acc-10",
			})
			var validation *errs.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCancelBookingExactlyOnce(t *testing.T) {
	svc, repo, _, publisher := newTestService()

	b, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if err := svc.CancelBooking("alice", b.ID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	stored, _ := repo.GetByID(b.ID)
	if stored.Status != models.BookingCanceled {
		t.Fatalf("expected CANCELED status, got %s", stored.Status)
	}

	err = svc.CancelBooking("alice", b.ID)
	var invalidStatus *errs.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status error on second cancel, got %v", err)
	}

	canceled := 0
	for _, m := range publisher.messages {
		if m == "Booking canceled: "+b.ID {
			canceled++
		}
	}
	if canceled != 1 {
		t.Fatalf("expected exactly one cancel notification, got %d", canceled)
	}
}

func TestBookingAccessControl(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err = svc.GetBookingByID("bob", b.ID)
	var accessDenied *errs.AccessDeniedError
	if !errors.As(err, &accessDenied) {
		t.Fatalf("expected access denied for non-owner, got %v", err)
	}

	if _, err := svc.GetBookingByID("alice", b.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.GetBookingByID("admin", b.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestCanceledBookingFreesDateRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(16),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if err := svc.CancelBooking("alice", b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.CreateBooking("bob", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(16),
		AccommodationID: "acc-10",
	}); err != nil {
		t.Fatalf("rebooking a canceled range failed: %v", err)
	}
}

func TestUpdateBookingIgnoresOwnRow(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(16),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// Shifting within the booking's own range must not conflict with itself.
	updated, err := svc.UpdateBooking(b.ID, models.BookingRequest{
		CheckInDate:     date(11),
		CheckOutDate:    date(15),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CheckInDate != date(11) || updated.CheckOutDate != date(15) {
		t.Fatalf("dates not applied: %s..%s", updated.CheckInDate, updated.CheckOutDate)
	}

	// But it still conflicts with other bookings.
	other, err := svc.CreateBooking("bob", models.BookingRequest{
		CheckInDate:     date(20),
		CheckOutDate:    date(25),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}
	_, err = svc.UpdateBooking(other.ID, models.BookingRequest{
		CheckInDate:     date(14),
		CheckOutDate:    date(18),
		AccommodationID: "acc-10",
	})
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on update into occupied range, got %v", err)
	}
}

func TestUpdateCanceledBookingFails(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if err := svc.CancelBooking("alice", b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err = svc.UpdateBooking(b.ID, models.BookingRequest{
		CheckInDate:     date(20),
		CheckOutDate:    date(22),
		AccommodationID: "acc-10",
	})
	var invalidStatus *errs.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestUpdateBookingRejectsAccommodationChange(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.CreateBooking("alice", models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		AccommodationID: "acc-10",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err = svc.UpdateBooking(b.ID, models.BookingRequest{
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		AccommodationID: "acc-11",
	})
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for moved accommodation, got %v", err)
	}

	stored, err := svc.GetBookingByID("alice", b.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.AccommodationID != "acc-10" {
		t.Fatalf("accommodation changed to %s", stored.AccommodationID)
	}
}

func TestMarkBookingsAsExpiredIsIdempotent(t *testing.T) {
	svc, repo, _, _ := newTestService()

	// Seed directly: the stale booking could not be created through the
	// service because its dates are in the past.
	stale := &models.Booking{
		ID:              "stale",
		CheckInDate:     date(-10),
		CheckOutDate:    date(-5),
		UserID:          "alice",
		AccommodationID: "acc-10",
		Status:          models.BookingPending,
	}
	if err := repo.Create(stale); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	canceled := &models.Booking{
		ID:              "canceled",
		CheckInDate:     date(-10),
		CheckOutDate:    date(-5),
		UserID:          "bob",
		AccommodationID: "acc-10",
		Status:          models.BookingCanceled,
	}
	if err := repo.Create(canceled); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	expired, err := svc.MarkBookingsAsExpired()
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != "stale" {
		t.Fatalf("expected only the stale booking, got %+v", expired)
	}
	if expired[0].Status != models.BookingExpired {
		t.Fatalf("expected EXPIRED status, got %s", expired[0].Status)
	}

	// Second run finds nothing: EXPIRED rows are excluded from the sweep.
	again, err := svc.MarkBookingsAsExpired()
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected idempotent sweep, got %+v", again)
	}
}

func TestGetBookingsByUserAndStatusValidatesStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetBookingsByUserAndStatus(models.BookingSearchParams{Status: "CONFIRMED"}, 0, 20)
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}
