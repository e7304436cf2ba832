package commands

import "context"

// Telemetry is the sink commands report to after a successful mutation.
// Events follow the "canvas.command.<name>" convention with the widget or
// dashboard id in the payload. Failed executions record nothing; the error
// return is the signal.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type nopTelemetry struct{}

func (nopTelemetry) Record(context.Context, string, map[string]any) {}

// normalizeTelemetry substitutes a silent sink for nil so command
// constructors accept an optional recorder.
func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return nopTelemetry{}
	}
	return t
}
