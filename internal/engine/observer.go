package engine

import "time"

// EventType represents the lifecycle phases of a load
type EventType string

const (
	EventHeaderStart   EventType = "header_start"
	EventHeaderEnd     EventType = "header_end"
	EventValuesStart   EventType = "values_start"
	EventValuesEnd     EventType = "values_end"
	EventAssembleStart EventType = "assemble_start"
	EventAssembleEnd   EventType = "assemble_end"
	// EventFailed ends whichever phase was running; Data holds the error
	EventFailed EventType = "failed"
)

// Event represents a lifecycle event of one load
type Event struct {
	Type      EventType   // Type of event
	SessionID string      // Load session ID for tracing
	Source    string      // Name of the input being loaded
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., element count, row count, error)
}

// Observer interface for event subscribers
// Observers receive events at major pipeline phases
type Observer interface {
	OnEvent(event Event)
}
