package canvas

import "context"

// Telemetry receives structured builder events. The session emits
// "canvas.dataset.*" events for fetch failures and "canvas.config.*" events
// when a persisted document cannot be decoded; payload keys are
// event-specific. Implementations must tolerate concurrent calls.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// noopTelemetry swallows events so callers never nil-check the sink.
type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
