package sink

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Recorder is an in-memory Listener that keeps every event it observes.
type Recorder struct {
	mu      sync.Mutex
	written []EventWritten
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnEventWritten records a copy of e.
func (r *Recorder) OnEventWritten(e EventWritten) {
	e.Payload = slices.Clone(e.Payload)

	r.mu.Lock()
	r.written = append(r.written, e)
	r.mu.Unlock()
}

// Written returns the recorded events in write order.
func (r *Recorder) Written() []EventWritten {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.written)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.written)
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.written = nil
	r.mu.Unlock()
}

// LogListener writes every event to a zap logger at debug level.
type LogListener struct {
	logger *zap.Logger
}

// NewLogListener creates a LogListener. A nil logger discards everything.
func NewLogListener(logger *zap.Logger) *LogListener {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LogListener{logger: logger}
}

// OnEventWritten logs e.
func (l *LogListener) OnEventWritten(e EventWritten) {
	l.logger.Debug("Event written",
		zap.String("source", e.SourceName),
		zap.Stringer("guid", e.SourceGUID),
		zap.Int("event_id", e.EventID),
		zap.Any("payload", e.Payload))
}
