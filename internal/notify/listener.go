// Package notify bridges the store's bucket notifications into queue tasks,
// playing the role the managed environment's event trigger plays in a
// serverless deployment.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7/pkg/notification"

	"github.com/dropflow/dropflow/internal/processor"
	"github.com/dropflow/dropflow/internal/queue"
	"github.com/dropflow/dropflow/internal/storage"
)

// Listener consumes object-created notifications and enqueues processing
// tasks for them.
type Listener struct {
	store *storage.MinioStore
	queue *asynq.Client
}

// NewListener constructs a Listener.
func NewListener(store *storage.MinioStore, queueClient *asynq.Client) *Listener {
	return &Listener{store: store, queue: queueClient}
}

// Run blocks consuming the notification stream until the context is
// cancelled. A broken stream is returned as an error so the caller can
// re-subscribe.
func (l *Listener) Run(ctx context.Context) error {
	for info := range l.store.ListenUploads(ctx) {
		if info.Err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("bucket notification stream: %w", info.Err)
		}
		event := eventFrom(info)
		if len(event.Records) == 0 {
			continue
		}
		if err := queue.EnqueueProcess(ctx, l.queue, event); err != nil {
			// The object is still in the bucket; a re-delivered notification
			// or a manual replay picks it up.
			log.Printf("enqueue upload event: %v", err)
			continue
		}
		log.Printf("queued %d record(s) for processing", len(event.Records))
	}
	return nil
}

func eventFrom(info notification.Info) processor.Event {
	var event processor.Event
	for _, rec := range info.Records {
		event.Records = append(event.Records, processor.Record{
			Bucket: rec.S3.Bucket.Name,
			Key:    rec.S3.Object.Key,
		})
	}
	return event
}
