package reqtrace

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is the coarse severity of a log line.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l >= LevelError {
		return "ERROR"
	}
	return "INFO"
}

// ParseLevel maps a level name to a Level, defaulting to LevelInfo for
// anything unrecognized.
func ParseLevel(s string) Level {
	if s == "error" || s == "ERROR" {
		return LevelError
	}
	return LevelInfo
}

// Sink appends complete text lines to a single destination, dropping
// anything below its minimum level. The underlying log.Logger
// serializes writes, so lines from concurrent in-flight requests never
// interleave. A Sink is configured once before serving begins and lives
// for the process lifetime.
type Sink struct {
	min   Level
	out   *log.Logger
	strip bool
}

// NewSink writes lines to w at or above min.
func NewSink(w io.Writer, min Level) *Sink {
	return &Sink{min: min, out: log.New(w, "", log.LstdFlags)}
}

// Open appends lines to the file at path, creating it if needed.
func Open(path string, min Level) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log destination: %w", err)
	}
	return NewSink(f, min), nil
}

// Plain returns a view of the sink that strips ANSI decoration from
// every line before it reaches the destination. The stripped output is
// byte-identical to the colored output minus escape sequences; there is
// no second formatting path.
func (s *Sink) Plain() *Sink {
	return &Sink{min: s.min, out: s.out, strip: true}
}

func (s *Sink) emit(l Level, line string) {
	if l < s.min {
		return
	}
	if s.strip {
		line = StripANSI(line)
	}
	s.out.Printf("%-5s %s", l, line)
}

// Infof emits one informational line.
func (s *Sink) Infof(format string, args ...any) {
	s.emit(LevelInfo, fmt.Sprintf(format, args...))
}

// Errorf emits one error line.
func (s *Sink) Errorf(format string, args ...any) {
	s.emit(LevelError, fmt.Sprintf(format, args...))
}
