// Package logging provides the custom io.Writer feeding the dashboard log
// stream.
package logging

import (
	"encoding/json"
	"log/slog"
	"time"
)

// StreamWriter intercepts structured log messages and forwards them to the
// LogBroadcaster for websocket distribution.
type StreamWriter struct {
	broadcaster *LogBroadcaster
}

// NewStreamWriter creates a writer that sends log data to the broadcaster.
func NewStreamWriter() *StreamWriter {
	return &StreamWriter{broadcaster: GetBroadcaster()}
}

// Write satisfies io.Writer. It receives JSON log lines, extracts the fields
// the dashboard needs, and submits them without blocking the logging call.
func (w *StreamWriter) Write(p []byte) (n int, err error) {
	var rawLog map[string]any
	if err := json.Unmarshal(p, &rawLog); err != nil {
		go w.broadcaster.SubmitLog(LogEntry{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Level:     slog.LevelError.String(),
			Channel:   string(ChannelSystem),
			Message:   "stream_writer: failed to parse incoming log message",
		})
		return len(p), nil
	}

	entry := LogEntry{
		Timestamp: w.getString(rawLog, "time"),
		Level:     w.getString(rawLog, "level"),
		Channel:   w.getString(rawLog, "channel"),
		Message:   w.getString(rawLog, "msg"),
		TenantID:  w.getString(rawLog, "tenantId"),
	}

	go w.broadcaster.SubmitLog(entry)

	return len(p), nil
}

func (w *StreamWriter) getString(data map[string]any, key string) string {
	if val, ok := data[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return ""
}
