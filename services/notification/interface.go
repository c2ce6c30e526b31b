package notification

// Notifier delivers a formatted message to the external chat endpoint.
type Notifier interface {
	Send(message string) error
}

// Publisher enqueues notification events for asynchronous delivery.
// Publishing is fire-and-forget: a queue failure is logged, never
// surfaced to the caller, so a chat outage cannot fail the HTTP
// request whose mutation already committed.
type Publisher interface {
	Publish(kind, message string)
}
