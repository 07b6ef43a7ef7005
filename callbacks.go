package reqtrace

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Callbacks are the three logging hooks the interceptor drives. Pre
// runs exactly once before the handler; afterwards exactly one of Post
// (normal return) or Exception (failure) runs. All three are
// side-effect only.
type Callbacks struct {
	Pre       func(id RequestID, r *http.Request)
	Post      func(id RequestID, r *http.Request, status int, elapsed time.Duration)
	Exception func(id RequestID, r *http.Request, err error, elapsed time.Duration)
}

// NewCallbacks builds the standard colorized callbacks writing to sink.
// For plain output pass sink.Plain(): decoration is stripped from the
// rendered lines on emission, so both variants share one formatting
// path and never diverge in content.
//
// Pre emits a second params line only when r.Form is already populated;
// the callbacks never parse the form themselves, since that could
// consume the request body before the handler sees it. Hosts that want
// the params line call ParseForm (or fill r.Form) upstream.
func NewCallbacks(sink *Sink, palette *Palette) Callbacks {
	tok := func(id RequestID) string { return id.Format(palette) }

	return Callbacks{
		Pre: func(id RequestID, r *http.Request) {
			sink.Infof("%s --> %s %s%s %s headers=%v",
				tok(id), r.Method, r.URL.Path, queryOf(r), r.RemoteAddr, r.Header)
			if len(r.Form) > 0 {
				sink.Infof("%s     params=%v", tok(id), r.Form)
			}
		},
		Post: func(id RequestID, r *http.Request, status int, elapsed time.Duration) {
			line := fmt.Sprintf("%s <-- %s %s%s %s %s %s",
				tok(id), r.Method, r.URL.Path, queryOf(r), r.RemoteAddr,
				formatElapsed(elapsed), formatStatus(status))
			// 4xx renders with strong emphasis but stays informational;
			// only server errors route to the error level.
			if status >= 500 {
				sink.Errorf("%s", line)
			} else {
				sink.Infof("%s", line)
			}
		},
		Exception: func(id RequestID, r *http.Request, err error, elapsed time.Duration) {
			sink.Errorf("%s !!! %s %s %s failed after %s",
				tok(id), r.Method, r.URL.Path, r.RemoteAddr, formatElapsed(elapsed))
			sink.Errorf("%s %s", tok(id), errorDetail(err))
		},
	}
}

// queryOf returns "?rawquery", or the empty string when the request
// carries no query at all.
func queryOf(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

// emphasis grades how loudly a field renders. Visual emphasis is
// independent of log severity.
type emphasis int

const (
	emphasisNone emphasis = iota
	emphasisModerate
	emphasisStrong
	emphasisStrongest
)

func (e emphasis) decorate(s string) string {
	switch e {
	case emphasisModerate:
		return fmt.Sprintf("\x1b[%dm%s%s", Yellow, s, ansiReset)
	case emphasisStrong:
		return fmt.Sprintf("\x1b[%dm%s%s", Red, s, ansiReset)
	case emphasisStrongest:
		return fmt.Sprintf("\x1b[1;%dm%s%s", Red, s, ansiReset)
	}
	return s
}

// classifyElapsed grades a latency by magnitude. The second return is
// false when the value cannot be classified (negative durations from a
// clock that went backwards).
func classifyElapsed(d time.Duration) (emphasis, bool) {
	if d < 0 {
		return emphasisNone, false
	}
	switch {
	case d >= 1500*time.Millisecond:
		return emphasisStrongest, true
	case d >= 1000*time.Millisecond:
		return emphasisStrong, true
	case d >= 500*time.Millisecond:
		return emphasisModerate, true
	}
	return emphasisNone, true
}

// classifyStatus grades a response status. The second return is false
// for values outside the valid HTTP status range.
func classifyStatus(status int) (emphasis, bool) {
	if status < 100 || status > 599 {
		return emphasisNone, false
	}
	switch {
	case status >= 500:
		return emphasisStrongest, true
	case status >= 400:
		return emphasisStrong, true
	case status >= 300:
		return emphasisModerate, true
	}
	return emphasisNone, true
}

// formatElapsed renders a latency in milliseconds, emphasized by
// magnitude. Unclassifiable values render as a placeholder instead of
// aborting the line.
func formatElapsed(d time.Duration) string {
	e, ok := classifyElapsed(d)
	if !ok {
		return "??"
	}
	return e.decorate(strconv.FormatInt(d.Milliseconds(), 10) + "ms")
}

// formatStatus renders a status code, emphasized by magnitude, with the
// same placeholder fallback for malformed values.
func formatStatus(status int) string {
	e, ok := classifyStatus(status)
	if !ok {
		return "???"
	}
	return e.decorate(strconv.Itoa(status))
}

// errorDetail renders the second exception line: the error text, plus
// the captured stack when the failure was a recovered panic.
func errorDetail(err error) string {
	if pe, ok := err.(*panicError); ok {
		return pe.Error() + "\n" + string(pe.stack)
	}
	return err.Error()
}
