package engine

import "log/slog"

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	if event.Type == EventFailed {
		lo.logger.Warn("load_lifecycle",
			"event", event.Type,
			"session_id", event.SessionID,
			"source", event.Source,
			"error", event.Data,
		)
		return
	}
	lo.logger.Info("load_lifecycle",
		"event", event.Type,
		"session_id", event.SessionID,
		"source", event.Source,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
