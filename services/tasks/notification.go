package tasks

import (
	"encoding/json"

	"stayhub/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationSend = "notification:send"

// NewNotificationTask wraps a notification event in an asynq task.
func NewNotificationTask(event models.NotificationEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationSend, b), nil
}
