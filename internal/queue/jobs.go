// Package queue defines the task carrying object-created events from the
// notification listener to the worker.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/dropflow/dropflow/internal/processor"
)

const (
	// ProcessUploadTask is scheduled for each batch of object-created
	// notifications under uploads/.
	ProcessUploadTask = "upload:process"

	// maxRetry bounds re-attempts of a failed processing pass. Reprocessing
	// overwrites the same result key, so retries are safe.
	maxRetry = 5
)

// EnqueueProcess enqueues a processing task for the event.
func EnqueueProcess(ctx context.Context, client *asynq.Client, event processor.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	task := asynq.NewTask(ProcessUploadTask, data)
	if _, err := client.EnqueueContext(ctx, task, asynq.MaxRetry(maxRetry)); err != nil {
		return fmt.Errorf("enqueue process task: %w", err)
	}
	return nil
}
