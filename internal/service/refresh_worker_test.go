// FILE: internal/service/refresh_worker_test.go
package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clinical-curation-be/internal/dto"
	"clinical-curation-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

func TestRefreshWorker(t *testing.T) {
	store := newFakeStore()
	engine := newFakeEngine()
	registry := NewRegistryService(&fakeFactory{store: store}, engine, memory.NewResolutionCache(), nil, noopLogger{})

	first := registerBMI(t, registry)
	before := store.versions[0].RegisteredAt

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	worker := NewRefreshWorker(pubSub, "REFRESH_FEATURE", registry)
	if err := worker.Consume(context.Background()); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	publisher := NewPublisherService("REFRESH_FEATURE", pubSub)
	payload, err := json.Marshal(dto.PublishRefreshMessage{FeatureId: first.FeatureId})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := publisher.Publish(context.Background(), payload); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		store.mu.Lock()
		refreshed := len(store.versions) == 1 && store.versions[0].RegisteredAt.After(before)
		store.mu.Unlock()
		if refreshed {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("worker did not refresh the feature in time")
}
