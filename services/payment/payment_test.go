package payment

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"stayhub/errs"
	"stayhub/models"
)

func date(offsetDays int) string {
	return time.Now().AddDate(0, 0, offsetDays).Format(models.DateLayout)
}

type fakePaymentRepo struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepo) Create(p *models.Payment) error {
	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) Update(p *models.Payment) error {
	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) GetBySessionID(sessionID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.SessionID == sessionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByUserID(userID string, page, size int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindAll(page, size int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) GetAllForSweep() ([]models.Payment, error) {
	return r.FindAll(0, 0)
}

func (r *fakePaymentRepo) ExistsPendingByUserID(userID string) (bool, error) {
	for _, p := range r.payments {
		if p.UserID == userID && p.Status == models.PaymentPending {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingRepo) Create(b *models.Booking) error { r.bookings[b.ID] = b; return nil }
func (r *fakeBookingRepo) Update(b *models.Booking) error { r.bookings[b.ID] = b; return nil }
func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.bookings[id], nil
}
func (r *fakeBookingRepo) FindByUserID(string, int, int) ([]models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) Find(models.BookingSearchParams, int, int) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindOverlapping(string, string, string, string) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindExpiredCandidates(string) ([]models.Booking, error) {
	return nil, nil
}

type fakeAccommodationRepo struct {
	accommodations map[string]*models.Accommodation
}

func (r *fakeAccommodationRepo) Create(a *models.Accommodation) error { return nil }
func (r *fakeAccommodationRepo) Update(a *models.Accommodation) error { return nil }
func (r *fakeAccommodationRepo) Delete(id string) error               { return nil }
func (r *fakeAccommodationRepo) GetByID(id string) (*models.Accommodation, error) {
	return r.accommodations[id], nil
}
func (r *fakeAccommodationRepo) GetAll(int, int) ([]models.Accommodation, error) {
	return nil, nil
}

// fakeGateway hands out numbered sessions and lets tests control what
// the remote session reports.
type fakeGateway struct {
	created  int
	sessions map[string]*CheckoutSession
	failFor  map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sessions: make(map[string]*CheckoutSession),
		failFor:  make(map[string]bool),
	}
}

func (g *fakeGateway) CreateSession(bookingID string, amount float64) (*CheckoutSession, error) {
	g.created++
	sess := &CheckoutSession{
		ID:            fmt.Sprintf("sess-%d", g.created),
		URL:           fmt.Sprintf("https://checkout.test/sess-%d", g.created),
		PaymentStatus: "unpaid",
		ExpiresAt:     time.Now().Add(24 * time.Hour).Unix(),
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

func (g *fakeGateway) GetSession(sessionID string) (*CheckoutSession, error) {
	if g.failFor[sessionID] {
		return nil, errs.NewSession("failed to retrieve checkout session "+sessionID, errors.New("boom"))
	}
	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, errs.NewSession("failed to retrieve checkout session "+sessionID, errors.New("no such session"))
	}
	copied := *sess
	return &copied, nil
}

type fakePublisher struct {
	messages []string
}

func (p *fakePublisher) Publish(kind, message string) {
	p.messages = append(p.messages, message)
}

func newTestService() (*StripePaymentService, *fakePaymentRepo, *fakeBookingRepo, *fakeGateway, *fakePublisher) {
	payments := newFakePaymentRepo()
	bookings := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"bk-1": {
			ID:              "bk-1",
			CheckInDate:     date(10),
			CheckOutDate:    date(17),
			UserID:          "alice",
			AccommodationID: "acc-10",
			Status:          models.BookingPending,
		},
	}}
	gateway := newFakeGateway()
	publisher := &fakePublisher{}
	svc := &StripePaymentService{
		Repo:        payments,
		BookingRepo: bookings,
		AccommodationRepo: &fakeAccommodationRepo{accommodations: map[string]*models.Accommodation{
			"acc-10": {ID: "acc-10", Type: models.TypeHouse, DailyRate: 150},
		}},
		Gateway:   gateway,
		Publisher: publisher,
	}
	return svc, payments, bookings, gateway, publisher
}

func TestCreatePaymentComputesAmount(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	// 7 nights at $150.00 per night.
	p, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if p.Amount != 1050.00 {
		t.Fatalf("expected amount 1050.00, got %.2f", p.Amount)
	}
	if p.Status != models.PaymentPending {
		t.Fatalf("expected PENDING status, got %s", p.Status)
	}
	if p.SessionID == "" || p.SessionURL == "" {
		t.Fatalf("expected session id and url, got %+v", p)
	}
}

func TestCreatePaymentIdempotentWhilePending(t *testing.T) {
	svc, _, _, gateway, _ := newTestService()

	first, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.SessionID != second.SessionID {
		t.Fatalf("expected same session, got %s and %s", first.SessionID, second.SessionID)
	}
	if gateway.created != 1 {
		t.Fatalf("expected one session created, got %d", gateway.created)
	}
}

func TestCreatePaymentRequiresOwnership(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.CreatePayment("bob", models.PaymentRequest{BookingID: "bk-1"})
	var unauthorized *errs.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestCreatePaymentRequiresPendingBooking(t *testing.T) {
	svc, _, bookings, _, _ := newTestService()
	bookings.bookings["bk-1"].Status = models.BookingCanceled

	_, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	var invalidStatus *errs.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestPaidPaymentIsTerminal(t *testing.T) {
	svc, payments, _, _, _ := newTestService()

	p, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	p.Status = models.PaymentPaid
	if err := payments.Update(p); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var invalidStatus *errs.InvalidStatusError

	_, err = svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status from createPayment, got %v", err)
	}

	_, err = svc.RenewPaymentSession("alice", p.ID)
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status from renew, got %v", err)
	}

	// The sweep must not touch PAID payments either.
	if _, err := svc.CheckExpiredPayments(); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	stored, _ := payments.GetByID(p.ID)
	if stored.Status != models.PaymentPaid {
		t.Fatalf("sweep changed a PAID payment to %s", stored.Status)
	}
}

func TestCreatePaymentRenewsExpired(t *testing.T) {
	svc, payments, _, gateway, _ := newTestService()

	p, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldSession := p.SessionID
	p.Status = models.PaymentExpired
	if err := payments.Update(p); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	renewed, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("renew via create failed: %v", err)
	}
	if renewed.ID != p.ID {
		t.Fatalf("renewal created a new payment row: %s vs %s", renewed.ID, p.ID)
	}
	if renewed.SessionID == oldSession {
		t.Fatalf("expected a fresh session after renewal")
	}
	if renewed.Status != models.PaymentPending {
		t.Fatalf("expected PENDING after renewal, got %s", renewed.Status)
	}
	if gateway.created != 2 {
		t.Fatalf("expected two sessions created, got %d", gateway.created)
	}
}

func TestProcessSuccessfulPayment(t *testing.T) {
	svc, payments, _, gateway, publisher := newTestService()

	p, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The remote session still reports unpaid.
	_, err = svc.ProcessSuccessfulPayment(p.SessionID)
	var invalidStatus *errs.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status for unpaid session, got %v", err)
	}

	gateway.sessions[p.SessionID].PaymentStatus = "paid"
	paid, err := svc.ProcessSuccessfulPayment(p.SessionID)
	if err != nil {
		t.Fatalf("success callback failed: %v", err)
	}
	if paid.Status != models.PaymentPaid {
		t.Fatalf("expected PAID, got %s", paid.Status)
	}
	stored, _ := payments.GetByID(p.ID)
	if stored.Status != models.PaymentPaid {
		t.Fatalf("payment not persisted as PAID")
	}
	if len(publisher.messages) != 1 {
		t.Fatalf("expected one success notification, got %d", len(publisher.messages))
	}

	// Replaying the callback is rejected.
	_, err = svc.ProcessSuccessfulPayment(p.SessionID)
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected invalid status on replay, got %v", err)
	}
}

func TestProcessSuccessfulPaymentUnknownSession(t *testing.T) {
	svc, _, _, gateway, _ := newTestService()
	gateway.sessions["ghost"] = &CheckoutSession{ID: "ghost", PaymentStatus: "paid"}

	_, err := svc.ProcessSuccessfulPayment("ghost")
	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestProcessCanceledPaymentMessages(t *testing.T) {
	svc, payments, _, _, _ := newTestService()

	p, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cases := []struct {
		status  string
		message string
	}{
		{models.PaymentPending, "The payment session is still available, complete the payment within 24 hours"},
		{models.PaymentExpired, "The payment session has expired, please renew it"},
		{models.PaymentPaid, "This payment was already processed"},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			p.Status = tc.status
			if err := payments.Update(p); err != nil {
				t.Fatalf("update failed: %v", err)
			}
			resp, err := svc.ProcessCanceledPayment(p.SessionID)
			if err != nil {
				t.Fatalf("cancel callback failed: %v", err)
			}
			if resp.Message != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, resp.Message)
			}
		})
	}
}

func TestCheckExpiredPaymentsSkipsFailures(t *testing.T) {
	svc, payments, bookings, gateway, _ := newTestService()
	bookings.bookings["bk-2"] = &models.Booking{
		ID:              "bk-2",
		CheckInDate:     date(10),
		CheckOutDate:    date(12),
		UserID:          "bob",
		AccommodationID: "acc-10",
		Status:          models.BookingPending,
	}

	first, err := svc.CreatePayment("alice", models.PaymentRequest{BookingID: "bk-1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.CreatePayment("bob", models.PaymentRequest{BookingID: "bk-2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The first session's lookup blows up; the second has expired.
	gateway.failFor[first.SessionID] = true
	gateway.sessions[second.SessionID].ExpiresAt = time.Now().Add(-time.Hour).Unix()

	expired, err := svc.CheckExpiredPayments()
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected one payment expired, got %d", expired)
	}

	storedFirst, _ := payments.GetByID(first.ID)
	if storedFirst.Status != models.PaymentPending {
		t.Fatalf("failing payment should be untouched, got %s", storedFirst.Status)
	}
	storedSecond, _ := payments.GetByID(second.ID)
	if storedSecond.Status != models.PaymentExpired {
		t.Fatalf("expected EXPIRED, got %s", storedSecond.Status)
	}
}

func TestGetPaymentsRoleScoping(t *testing.T) {
	svc, payments, _, _, _ := newTestService()
	seed := []*models.Payment{
		{ID: "p1", BookingID: "b1", UserID: "alice", Status: models.PaymentPending, SessionID: "s1"},
		{ID: "p2", BookingID: "b2", UserID: "bob", Status: models.PaymentPaid, SessionID: "s2"},
	}
	for _, p := range seed {
		if err := payments.Create(p); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	customer := &models.User{ID: "alice", Roles: []string{models.RoleCustomer}}
	admin := &models.User{ID: "root", Roles: []string{models.RoleAdmin}}

	// A customer is pinned to their own payments even with a filter.
	mine, err := svc.GetPayments(customer, "bob", 0, 20)
	if err != nil {
		t.Fatalf("customer listing failed: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "alice" {
		t.Fatalf("expected only alice's payments, got %+v", mine)
	}

	all, err := svc.GetPayments(admin, "", 0, 20)
	if err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected all payments for admin, got %d", len(all))
	}

	filtered, err := svc.GetPayments(admin, "bob", 0, 20)
	if err != nil {
		t.Fatalf("admin filtered listing failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].UserID != "bob" {
		t.Fatalf("expected bob's payments, got %+v", filtered)
	}
}
