package tasks

import (
	"encoding/json"

	"folio/models"

	"github.com/hibiken/asynq"
)

const TypeSendConfirmation = "booking:confirmation"

// NewConfirmationTask builds the asynq task enqueued after a booking confirms.
func NewConfirmationTask(payload models.ReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendConfirmation, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
