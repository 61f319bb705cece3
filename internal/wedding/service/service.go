// Package service exposes the wedding details operations used by the web
// surface: a read that always yields a renderable record, a whole-record
// update, and a watch channel that fans committed updates out to subscribers.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/goldencity/invite/internal/wedding"
	"github.com/goldencity/invite/internal/wedding/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goldencity/invite/internal/wedding/service"

// Service coordinates reads, writes, and update fan-out for the wedding
// details record.
type Service struct {
	store  storage.RecordStore
	tracer trace.Tracer

	mu          sync.Mutex
	subscribers map[int]chan wedding.Details
	nextID      int
}

// New returns a service backed by the given record store.
func New(store storage.RecordStore) *Service {
	return &Service{
		store:       store,
		tracer:      otel.Tracer(tracerName),
		subscribers: make(map[int]chan wedding.Details),
	}
}

// GetDetails returns the current wedding details. When nothing has been
// saved yet it returns the fixed default record, so callers can always
// render immediately.
func (s *Service) GetDetails(ctx context.Context) (wedding.Details, error) {
	ctx, span := s.tracer.Start(ctx, "wedding.GetDetails")
	defer span.End()

	details, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return wedding.Defaults(), nil
		}
		return wedding.Details{}, err
	}
	return details, nil
}

// UpdateDetails replaces the saved record with the given details and
// notifies every watcher of the new value. All fields are required on every
// call; there is no partial patch.
func (s *Service) UpdateDetails(ctx context.Context, details wedding.Details) error {
	ctx, span := s.tracer.Start(ctx, "wedding.UpdateDetails")
	defer span.End()

	if err := s.store.Put(ctx, details); err != nil {
		return err
	}
	s.publish(details)
	return nil
}

// Watch returns a channel delivering each committed update and a cancel
// function releasing the subscription. Delivery is monotonic latest-wins: a
// subscriber that falls behind sees the newest committed value, never an
// older one after a newer one.
func (s *Service) Watch(ctx context.Context) (<-chan wedding.Details, func()) {
	ch := make(chan wedding.Details, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel
}

// publish delivers a committed value to every subscriber. Each subscriber
// channel holds one slot; a stale undelivered value is dropped before the
// newer one is queued.
func (s *Service) publish(details wedding.Details) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- details.Clone():
		default:
		}
	}
}
