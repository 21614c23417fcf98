package engine

import (
	"testing"

	"github.com/leengari/ply-scene/internal/parser"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) Types() []EventType {
	types := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

func TestAddObserver(t *testing.T) {
	eng := New("", parser.Options{})
	observer := &MockObserver{}

	eng.AddObserver(observer)

	if len(eng.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(eng.observers))
	}
}

func TestRemoveObserver(t *testing.T) {
	eng := New("", parser.Options{})
	observer := &MockObserver{}

	eng.AddObserver(observer)
	eng.RemoveObserver(observer)

	if len(eng.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(eng.observers))
	}
}

func TestNotifyWithNoObservers(t *testing.T) {
	eng := New("", parser.Options{})

	// Should not panic
	eng.notify(Event{Type: EventHeaderStart, SessionID: "test-session"})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	eng := New("", parser.Options{})
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	eng.AddObserver(observer1)
	eng.AddObserver(observer2)

	testEvent := Event{Type: EventHeaderStart, SessionID: "test-session", Source: "cube.ply"}
	eng.notify(testEvent)

	if len(observer1.Events) != 1 {
		t.Errorf("Observer1: Expected 1 event, got %d", len(observer1.Events))
	}
	if len(observer2.Events) != 1 {
		t.Errorf("Observer2: Expected 1 event, got %d", len(observer2.Events))
	}

	if observer1.Events[0].Type != EventHeaderStart {
		t.Errorf("Observer1: Expected EventHeaderStart, got %v", observer1.Events[0].Type)
	}
	if observer2.Events[0].Type != EventHeaderStart {
		t.Errorf("Observer2: Expected EventHeaderStart, got %v", observer2.Events[0].Type)
	}
}

func TestEventTimestamp(t *testing.T) {
	eng := New("", parser.Options{})
	observer := &MockObserver{}
	eng.AddObserver(observer)

	eng.notify(Event{Type: EventHeaderStart, SessionID: "test-session"})

	if observer.Events[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be set, got zero value")
	}
}

func TestLoggingObserverDoesNotPanic(t *testing.T) {
	eng := New("", parser.Options{})
	eng.AddObserver(NewLoggingObserver())

	if _, err := eng.Parse("bad", "ply\nformat ascii 1.0\nelement vertex x\nend_header\n"); err == nil {
		t.Error("Expected header error")
	}
}
