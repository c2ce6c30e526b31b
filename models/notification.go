package models

import "time"

// Notification event kinds.
const (
	EventBookingCreated       = "booking_created"
	EventBookingCanceled      = "booking_canceled"
	EventBookingExpired       = "booking_expired"
	EventAccommodationCreated = "accommodation_created"
	EventPaymentSucceeded     = "payment_succeeded"
	EventPlainMessage         = "plain_message"
)

// NotificationEvent is the payload queued for the notification worker.
// Message is the fully formatted text to deliver.
type NotificationEvent struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
