// FILE: internal/service/binding_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"clinical-curation-be/internal/dto"
	"clinical-curation-be/internal/repository/memory"

	"github.com/google/uuid"
)

func TestBind(t *testing.T) {
	store := newFakeStore()
	engine := newFakeEngine()
	registry := NewRegistryService(&fakeFactory{store: store}, engine, memory.NewResolutionCache(), nil, noopLogger{})
	bindings := NewBindingService(&fakeFactory{store: store}, noopLogger{})

	first := registerBMI(t, registry)

	res, err := bindings.Bind(context.Background(), &dto.BindConsumerRequest{
		Id:              first.FeatureId,
		Version:         1,
		ConsumerId:      "cohort-builder",
		ConsumerVersion: "2.1.0",
	})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if res.BindingId == uuid.Nil {
		t.Error("binding id is nil")
	}

	listed, err := bindings.BindingsFor(context.Background(), first.FeatureId)
	if err != nil {
		t.Fatalf("BindingsFor: %v", err)
	}
	if len(listed) != 1 || listed[0].ConsumerId != "cohort-builder" {
		t.Errorf("bindings = %+v", listed)
	}

	// A bound version now refuses unforced removal.
	err = registry.RemoveLatestVersion(context.Background(), first.FeatureId, false)
	if !errors.Is(err, ErrVersionBound) {
		t.Errorf("err = %v, want ErrVersionBound", err)
	}
}

func TestBind_UnknownTargets(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistryService(&fakeFactory{store: store}, newFakeEngine(), memory.NewResolutionCache(), nil, noopLogger{})
	bindings := NewBindingService(&fakeFactory{store: store}, noopLogger{})

	_, err := bindings.Bind(context.Background(), &dto.BindConsumerRequest{
		Id:         uuid.New(),
		Version:    1,
		ConsumerId: "cohort-builder",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown feature: err = %v, want ErrNotFound", err)
	}

	first := registerBMI(t, registry)
	_, err = bindings.Bind(context.Background(), &dto.BindConsumerRequest{
		Id:         first.FeatureId,
		Version:    7,
		ConsumerId: "cohort-builder",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown version: err = %v, want ErrNotFound", err)
	}
}
