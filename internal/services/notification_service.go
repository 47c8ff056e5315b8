package services

import (
	"context"
	"slices"
	"sync"

	"github.com/terraincognita07/chemocompanion/internal/logger"
	"github.com/terraincognita07/chemocompanion/internal/models"
)

// ChangeEvent names the kinds touched by one committed write.
type ChangeEvent struct {
	Kinds []models.Kind
}

func (event ChangeEvent) Affects(kinds []models.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, kind := range event.Kinds {
		if slices.Contains(kinds, kind) {
			return true
		}
	}
	return false
}

type ChangeNotifier interface {
	Subscribe(ctx context.Context, kinds ...models.Kind) <-chan ChangeEvent
}

type changeSubscriber struct {
	kinds  []models.Kind
	events chan ChangeEvent
}

// NotificationService fans committed store writes out to subscribers. It is
// registered on the store as a commit listener.
type NotificationService struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]*changeSubscriber
}

func NewNotificationService() *NotificationService {
	return &NotificationService{subscribers: make(map[int]*changeSubscriber)}
}

func (service *NotificationService) Committed(kinds ...models.Kind) {
	event := ChangeEvent{Kinds: slices.Clone(kinds)}

	service.mu.Lock()
	defer service.mu.Unlock()
	for _, subscriber := range service.subscribers {
		if !event.Affects(subscriber.kinds) {
			continue
		}
		offerLatest(subscriber.events, event)
	}
}

// Subscribe delivers an event per matching commit until ctx is done, then
// closes the channel. No kinds means every kind. A slow reader only sees the
// most recent pending event.
func (service *NotificationService) Subscribe(ctx context.Context, kinds ...models.Kind) <-chan ChangeEvent {
	subscriber := &changeSubscriber{
		kinds:  slices.Clone(kinds),
		events: make(chan ChangeEvent, 1),
	}

	service.mu.Lock()
	id := service.nextID
	service.nextID++
	service.subscribers[id] = subscriber
	service.mu.Unlock()

	go func() {
		<-ctx.Done()
		service.mu.Lock()
		delete(service.subscribers, id)
		close(subscriber.events)
		service.mu.Unlock()
	}()

	return subscriber.events
}

func (service *NotificationService) SubscriberCount() int {
	service.mu.Lock()
	defer service.mu.Unlock()
	return len(service.subscribers)
}

// Watch returns the current result of fetch and a channel carrying a fresh
// result after every committed change to kinds. The channel closes when ctx
// is done.
func Watch[T any](ctx context.Context, notifier ChangeNotifier, fetch func(context.Context) (T, error), kinds ...models.Kind) (T, <-chan T, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	events := notifier.Subscribe(watchCtx, kinds...)

	initial, err := fetch(watchCtx)
	if err != nil {
		cancel()
		var zero T
		return zero, nil, err
	}

	updates := make(chan T, 1)
	go func() {
		defer close(updates)
		defer cancel()
		for range events {
			snapshot, err := fetch(watchCtx)
			if err != nil {
				if watchCtx.Err() != nil {
					return
				}
				logger.Warn("watch refresh failed", "kinds", kinds, "err", err)
				continue
			}
			offerLatest(updates, snapshot)
		}
	}()

	return initial, updates, nil
}

// offerLatest replaces a pending value instead of blocking. The caller must
// be the only sender on channel.
func offerLatest[T any](channel chan T, value T) {
	select {
	case channel <- value:
		return
	default:
	}
	select {
	case <-channel:
	default:
	}
	select {
	case channel <- value:
	default:
	}
}
