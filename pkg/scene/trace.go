package scene

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
)

// Sink consumes trace lines emitted by Move and Draw on leaf elements.
// Delivery is fire-and-forget; a Sink has no way to report failure.
type Sink interface {
	Trace(line string)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(line string)

// Trace calls f(line).
func (f SinkFunc) Trace(line string) { f(line) }

// Discard drops every line.
var Discard Sink = SinkFunc(func(string) {})

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) Trace(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

// WriterSink writes each line to w followed by a newline. Write errors
// are ignored.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

// LogSink emits each line as an info record on l.
func LogSink(l *slog.Logger) Sink {
	return SinkFunc(func(line string) {
		l.Info(line)
	})
}

// Recorder is a Sink that keeps every line in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Trace appends line.
func (r *Recorder) Trace(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset forgets all recorded lines.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}

type sinkBox struct{ s Sink }

var defaultSink atomic.Pointer[sinkBox]

func init() {
	defaultSink.Store(&sinkBox{s: Discard})
}

// SetSink sets the sink used by leaves constructed without Traced.
// Pass nil to restore Discard.
func SetSink(s Sink) {
	if s == nil {
		s = Discard
	}
	defaultSink.Store(&sinkBox{s: s})
}

// DefaultSink returns the current package-level sink.
func DefaultSink() Sink {
	return defaultSink.Load().s
}

func emit(s Sink, line string) {
	if s == nil {
		s = DefaultSink()
	}
	s.Trace(line)
}

// traceLine renders "<Kind> <op> x: <x> y: <y>".
func traceLine(k Kind, op string, x, y float64) string {
	return k.String() + " " + op + " x: " + formatFloat(x) + " y: " + formatFloat(y)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
