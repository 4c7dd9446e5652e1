package busobj

import (
	"log/slog"

	"github.com/hashicorp/go-metrics"
)

var (
	// MetricDispatchCallCount counts handler invocations, labelled with the
	// target interface and method.
	MetricDispatchCallCount      = []string{"busobj", "dispatch", "call", "count"}
	MetricDispatchErrorCount     = []string{"busobj", "dispatch", "error", "count"}
	MetricDispatchSendErrorCount = []string{"busobj", "dispatch", "send", "error", "count"}
	MetricRunnerDiscardCount     = []string{"busobj", "runner", "discard", "count"}
	MetricRunnerUnclaimedCount   = []string{"busobj", "runner", "unclaimed", "count"}
)

type TelemetryLabel string

var (
	LabelError     TelemetryLabel = "error"
	LabelErrorName TelemetryLabel = "error_name"
	LabelInterface TelemetryLabel = "interface"
	LabelMethod    TelemetryLabel = "method"
	LabelPath      TelemetryLabel = "path"
	LabelServer    TelemetryLabel = "server"
)

func (lab TelemetryLabel) M(val string) metrics.Label {
	return metrics.Label{Name: string(lab), Value: val}
}

func (lab TelemetryLabel) L(val any) slog.Attr {
	return slog.Attr{
		Key:   string(lab),
		Value: slog.AnyValue(val),
	}
}
