package common

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"io"
	"time"
)

// --------------------------------------------------------------------------
// Call metrics
// --------------------------------------------------------------------------

// ObserveCall records a single RPC call. It is called by the client after
// every call with the time the call started and its error (if any).
func ObserveCall(service, method string, start time.Time, err error) {
	labels := fmt.Sprintf(`{service=%q,method=%q}`, service, method)

	metrics.GetOrCreateCounter("oconn_rpc_calls_total" + labels).Inc()
	metrics.GetOrCreateHistogram("oconn_rpc_call_duration_seconds" + labels).UpdateDuration(start)

	if err != nil {
		metrics.GetOrCreateCounter("oconn_rpc_errors_total" + labels).Inc()
	}
}

// CallCount returns how many calls of the given service/method were recorded
func CallCount(service, method string) uint64 {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`oconn_rpc_calls_total{service=%q,method=%q}`, service, method)).Get()
}

// ErrorCount returns how many failed calls of the given service/method were recorded
func ErrorCount(service, method string) uint64 {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`oconn_rpc_errors_total{service=%q,method=%q}`, service, method)).Get()
}

// WriteMetrics writes all recorded metrics in the Prometheus text format
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
