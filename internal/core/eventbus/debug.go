package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs bus activity: published events at debug level,
// drops as warnings and subscriber panics as errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		e := logger.Debug().Str("event", string(event))
		switch p := payload.(type) {
		case TaskCreatedPayload:
			e = e.Int64("task_id", p.Task.ID)
		case TaskUpdatedPayload:
			e = e.Int64("task_id", p.Task.ID)
		case TaskStatusChangedPayload:
			e = e.Int64("task_id", p.ID).Str("status", string(p.Status))
		case TaskRemovedPayload:
			e = e.Int64("task_id", p.ID)
		case TasksClearedPayload:
			e = e.Int64("count", p.Count)
		case ThemeChangedPayload:
			e = e.Str("theme", p.Theme)
		}
		e.Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
