// Package meshlog routes lvmesh log lines to three streams and tags each line
// with the package that wrote it.
//
//   - Ops:   actionable events (files loaded or written, failures).
//   - Diag:  day-to-day diagnostics (skipped derivations, merge statistics).
//   - Trace: parse progress and other high-volume detail.
//
// Packages declare a scoped Logger once (var logger = meshlog.For("meshio")) so
// every line reads "[lvmesh] meshio: ...". A nil writer disables a stream and
// Enabled lets hot loops skip formatting entirely. By default only Ops is
// enabled, on stderr.
package meshlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const prefix = "[lvmesh] "

// Stream selects one of the three outputs.
type Stream int

const (
	Ops Stream = iota
	Diag
	Trace
)

// LogWriters holds the io.Writers for each logging stream.
type LogWriters struct {
	Ops   io.Writer
	Diag  io.Writer
	Trace io.Writer
}

var (
	mu      sync.RWMutex
	loggers = [3]*log.Logger{Ops: newLogger(os.Stderr)}
)

// SetLogWriters configures all three logging streams at once.
// Pass nil for any writer to disable that stream.
func SetLogWriters(w LogWriters) {
	mu.Lock()
	defer mu.Unlock()
	loggers = [3]*log.Logger{
		Ops:   newLogger(w.Ops),
		Diag:  newLogger(w.Diag),
		Trace: newLogger(w.Trace),
	}
}

func newLogger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

func current(s Stream) *log.Logger {
	if s < Ops || s > Trace {
		return nil
	}
	mu.RLock()
	defer mu.RUnlock()
	return loggers[s]
}

// Enabled reports whether s currently has a writer.
func Enabled(s Stream) bool { return current(s) != nil }

// Logger writes lines tagged with a package scope. The zero value is an
// untagged logger.
type Logger struct {
	scope string
}

// For returns the Logger for scope.
func For(scope string) Logger { return Logger{scope: scope} }

func (l Logger) printf(s Stream, format string, args []interface{}) {
	lg := current(s)
	if lg == nil {
		return
	}
	if l.scope != "" {
		format = l.scope + ": " + format
	}
	lg.Printf(format, args...)
}

// Opsf logs to the ops stream.
func (l Logger) Opsf(format string, args ...interface{}) { l.printf(Ops, format, args) }

// Diagf logs to the diag stream.
func (l Logger) Diagf(format string, args ...interface{}) { l.printf(Diag, format, args) }

// Tracef logs to the trace stream.
func (l Logger) Tracef(format string, args ...interface{}) { l.printf(Trace, format, args) }

// Progress returns a counter that logs "<what>: n" on the trace stream every
// step items. It is inert when trace is disabled at creation time.
func (l Logger) Progress(what string, step int) *Progress {
	if step <= 0 || !Enabled(Trace) {
		return &Progress{}
	}
	return &Progress{l: l, what: what, step: step, next: step, on: true}
}

// Progress counts parsed items for periodic trace output.
type Progress struct {
	l    Logger
	what string
	step int
	next int
	n    int
	on   bool
}

// Add counts k more items.
func (p *Progress) Add(k int) {
	p.n += k
	if !p.on || p.n < p.next {
		return
	}
	p.l.Tracef("%s: %d", p.what, p.n)
	p.next = p.n - p.n%p.step + p.step
}

// Done logs the final count and returns it.
func (p *Progress) Done() int {
	if p.on {
		p.l.Tracef("%s: %d (done)", p.what, p.n)
	}
	return p.n
}

// String returns the stream name.
func (s Stream) String() string {
	switch s {
	case Ops:
		return "ops"
	case Diag:
		return "diag"
	case Trace:
		return "trace"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}
