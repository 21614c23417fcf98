package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/leengari/ply-scene/internal/engine"

// TracingObserver turns each start/end event pair into an OpenTelemetry span
// named after the phase (ply.header, ply.values, ply.assemble)
type TracingObserver struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span // session ID + phase
}

// NewTracingObserver creates a tracing observer. A nil provider uses the
// global one.
func NewTracingObserver(tp trace.TracerProvider) *TracingObserver {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingObserver{
		tracer: tp.Tracer(tracerName),
		spans:  make(map[string]trace.Span),
	}
}

// phaseOf splits "header_start" into ("header", true)
func phaseOf(t EventType) (phase string, start bool, ok bool) {
	s := string(t)
	if p, found := strings.CutSuffix(s, "_start"); found {
		return p, true, true
	}
	if p, found := strings.CutSuffix(s, "_end"); found {
		return p, false, true
	}
	return "", false, false
}

// OnEvent implements the Observer interface
func (to *TracingObserver) OnEvent(event Event) {
	to.mu.Lock()
	defer to.mu.Unlock()

	if event.Type == EventFailed {
		to.failSession(event)
		return
	}

	phase, start, ok := phaseOf(event.Type)
	if !ok {
		return
	}
	key := event.SessionID + "/" + phase

	if start {
		_, span := to.tracer.Start(context.Background(), "ply."+phase,
			trace.WithTimestamp(event.Timestamp),
			trace.WithAttributes(
				attribute.String("session.id", event.SessionID),
				attribute.String("ply.source", event.Source),
			),
		)
		to.spans[key] = span
		return
	}

	span, ok := to.spans[key]
	if !ok {
		return
	}
	delete(to.spans, key)
	span.SetAttributes(dataAttributes(event.Data)...)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(event.Timestamp))
}

// failSession ends every open span of the session with an error status
func (to *TracingObserver) failSession(event Event) {
	err, _ := event.Data.(error)
	prefix := event.SessionID + "/"
	for key, span := range to.spans {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		delete(to.spans, key)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Error, "load failed")
		}
		span.End(trace.WithTimestamp(event.Timestamp))
	}
}

// Open reports how many spans are still running
func (to *TracingObserver) Open() int {
	to.mu.Lock()
	defer to.mu.Unlock()
	return len(to.spans)
}

func dataAttributes(data interface{}) []attribute.KeyValue {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, len(m))
	for k, v := range m {
		key := "ply." + k
		switch val := v.(type) {
		case int:
			attrs = append(attrs, attribute.Int(key, val))
		case bool:
			attrs = append(attrs, attribute.Bool(key, val))
		case string:
			attrs = append(attrs, attribute.String(key, val))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(val)))
		}
	}
	return attrs
}
