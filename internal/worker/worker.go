// Package worker plugs the file processor into the asynq task loop.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/dropflow/dropflow/internal/processor"
	"github.com/dropflow/dropflow/internal/queue"
)

// Handler dispatches queued upload events to the processor.
type Handler struct {
	processor *processor.Processor
}

// NewHandler constructs a Handler.
func NewHandler(p *processor.Processor) *Handler {
	return &Handler{processor: p}
}

// Mux registers the upload-processing task handler.
func (h *Handler) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.ProcessUploadTask, h.handleProcess)
	return mux
}

// handleProcess returns the processor's error unwrapped so a failed batch is
// retried by asynq rather than silently swallowed.
func (h *Handler) handleProcess(ctx context.Context, task *asynq.Task) error {
	var event processor.Event
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return h.processor.ProcessEvent(ctx, event)
}
