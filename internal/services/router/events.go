package router

import (
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/domain"
)

// LogSink writes router events to the global zerolog logger. Failures log at
// warn, everything else at debug.
type LogSink struct{}

func (LogSink) Publish(ev domain.Event) {
	entry := log.Debug()
	switch ev.Type {
	case domain.EventQuoteError, domain.EventTradeFailed:
		entry = log.Warn()
	}
	entry = entry.
		Str("event", string(ev.Type)).
		Str("venue", ev.Venue).
		Dur("elapsed", ev.Elapsed)
	if ev.Error != "" {
		entry = entry.Str("error", ev.Error)
	}
	if ev.FallbackUsed {
		entry = entry.Bool("fallback", true)
	}
	if ev.Attempts > 0 {
		entry = entry.Int("attempts", ev.Attempts)
	}
	entry.Msg("router event")
}
