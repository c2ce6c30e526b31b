package cron

import (
	"context"
	"encoding/json"

	"stayhub/config"
	"stayhub/models"
	"stayhub/services/notification"
	"stayhub/services/tasks"
	"stayhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker consumes queued notification events and hands
// them to the notifier. Runs in the background; asynq retries failed
// deliveries with its own backoff.
func InitNotificationWorker(notifier notification.Notifier) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationSend, handleNotificationTask(notifier))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting notification worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("notification worker stopped", zap.Error(err))
		}
	}()

	return srv
}

func handleNotificationTask(notifier notification.Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.NotificationEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			utils.GetLogger().Error("invalid notification payload", zap.Error(err))
			return err
		}

		if err := notifier.Send(event.Message); err != nil {
			utils.GetLogger().Warn("notification delivery failed, will retry",
				zap.String("kind", event.Kind), zap.Error(err))
			return err
		}
		return nil
	}
}
