package notification

import (
	"time"

	"stayhub/models"
	"stayhub/services/tasks"
	"stayhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqPublisher queues notification events on Redis for the
// background worker.
type AsynqPublisher struct {
	client *asynq.Client
}

// NewAsynqPublisher wraps an asynq client.
func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{client: client}
}

// Publish enqueues the event. Failures are logged and swallowed.
func (p *AsynqPublisher) Publish(kind, message string) {
	event := models.NotificationEvent{
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	task, err := tasks.NewNotificationTask(event)
	if err != nil {
		utils.GetLogger().Error("failed to build notification task",
			zap.String("kind", kind), zap.Error(err))
		return
	}

	if _, err := p.client.Enqueue(task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)); err != nil {
		utils.GetLogger().Error("failed to enqueue notification",
			zap.String("kind", kind), zap.Error(err))
	}
}
