// FILE: internal/service/refresh_worker.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"clinical-curation-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IRefreshWorker interface {
	Consume(ctx context.Context) error
}

// refreshWorker drains queued refresh requests and re-materializes the
// requested feature's latest table. Serialization with concurrent writers
// happens inside the registry service via the per-feature lock.
type refreshWorker struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	registryService IRegistryService
}

func NewRefreshWorker(
	pubSub *gochannel.GoChannel,
	topicName string,
	registryService IRegistryService,
) IRefreshWorker {
	return &refreshWorker{
		pubSub:          pubSub,
		topicName:       topicName,
		registryService: registryService,
	}
}

func (w *refreshWorker) Consume(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, w.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			w.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (w *refreshWorker) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishRefreshMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal refresh message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Refreshing feature %s", payload.FeatureId)

	if _, err := w.registryService.RefreshFeature(ctx, payload.FeatureId); err != nil {
		log.Printf("[ERROR] Refresh failed for feature %s: %v", payload.FeatureId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
