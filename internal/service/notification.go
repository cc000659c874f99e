package service

import (
	"github.com/nullwave/flotilla/internal/controller"
	"github.com/nullwave/flotilla/internal/dto"
	"github.com/nullwave/flotilla/internal/events"
)

var _ controller.NotificationService = (*NotificationService)(nil)

// NotificationService adapts an events.EventBus's callback-style Subscribe
// into the channel-style controller.NotificationService the websocket and
// bot layers consume. Share the same bus instance with NewMemoryService so
// events MemoryService publishes actually reach these subscribers.
type NotificationService struct {
	bus events.EventBus
}

// NewNotificationService wraps bus for controller.NotificationService use.
func NewNotificationService(bus events.EventBus) *NotificationService {
	return &NotificationService{bus: bus}
}

// Subscribe returns a channel delivering every event published for matchID.
func (s *NotificationService) Subscribe(matchID string) (controller.Subscription, <-chan *dto.GameEvent) {
	ch := make(chan *dto.GameEvent, 100)
	sub := s.bus.Subscribe(matchID, func(e *events.GameEvent) {
		select {
		case ch <- e:
		default:
			// Non-blocking send: a slow subscriber drops stale updates
			// rather than stalling the publisher.
		}
	})
	return sub, ch
}

// Publish forwards event onto the underlying bus.
func (s *NotificationService) Publish(event *dto.GameEvent) {
	s.bus.Publish(event)
}
