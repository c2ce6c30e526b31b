package models

import "time"

// Payment statuses.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentExpired = "EXPIRED"
)

// Payment tracks the checkout session of a booking. UserID is
// denormalized from the owning booking so the listing query does not
// need a join.
type Payment struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"bookingId"`
	UserID     string    `bson:"user_id" json:"-"`
	Status     string    `bson:"status" json:"status"`
	SessionID  string    `bson:"session_id" json:"-"`
	SessionURL string    `bson:"session_url" json:"sessionUrl"`
	Amount     float64   `bson:"amount" json:"amount"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// PaymentRequest is the create-payment payload.
type PaymentRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// CanceledPaymentResponse is the payment view returned from the cancel
// callback, with a status-specific human message.
type CanceledPaymentResponse struct {
	Message string  `json:"message"`
	Payment Payment `json:"payment"`
}
