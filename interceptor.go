package reqtrace

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
)

// HandlerFunc is a request handler that reports failure through its
// error return instead of writing an error response itself. Producing a
// client-visible response for the error stays the caller's job.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Interceptor wraps handlers so that every request produces a
// correlated set of log lines: a pre line before handling, then exactly
// one of a post line (with status and latency) or an exception pair.
// All lines share a per-request id so one request's lifecycle can be
// reconstructed from interleaved output.
//
// An Interceptor holds no mutable state across requests and is safe for
// concurrent use.
type Interceptor struct {
	callbacks Callbacks
	newID     func() RequestID
}

type options struct {
	palette   *Palette
	plain     bool
	callbacks *Callbacks
}

// Option configures an Interceptor at construction time.
type Option func(*options)

// WithPalette selects the palette used to colorize request ids.
func WithPalette(p *Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithPlainOutput strips all color decoration from emitted lines, for
// non-terminal sinks. Informational content is unchanged.
func WithPlainOutput() Option {
	return func(o *options) { o.plain = true }
}

// WithCallbacks replaces the standard logging callbacks entirely. The
// sink and palette are ignored when this option is used.
func WithCallbacks(cb Callbacks) Option {
	return func(o *options) { o.callbacks = &cb }
}

// New builds an interceptor emitting to sink. Defaults: colorized
// output, DefaultPalette.
func New(sink *Sink, opts ...Option) *Interceptor {
	o := options{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&o)
	}
	var cb Callbacks
	if o.callbacks != nil {
		cb = *o.callbacks
	} else {
		s := sink
		if o.plain {
			s = sink.Plain()
		}
		cb = NewCallbacks(s, o.palette)
	}
	return &Interceptor{callbacks: cb, newID: NewRequestID}
}

// Wrap instruments an error-returning handler. On normal return the
// post logger records status and latency and the nil error passes
// through; on failure the exception logger records the error and the
// identical error value is returned upward, never converted into a
// response and never suppressed.
func (i *Interceptor) Wrap(h HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id := i.newID()
		start := time.Now()
		i.callbacks.Pre(id, r)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		err := h(rec, r)
		elapsed := time.Since(start)
		if err != nil {
			i.callbacks.Exception(id, r, err, elapsed)
			return err
		}
		i.callbacks.Post(id, r, rec.status, elapsed)
		return nil
	}
}

// Middleware adapts the interceptor to plain http.Handler chains
// (mux.Router.Use and friends). A panic in next is logged through the
// exception path and re-raised with the original panic value.
func (i *Interceptor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := i.newID()
		start := time.Now()
		i.callbacks.Pre(id, r)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if v := recover(); v != nil {
				i.callbacks.Exception(id, r, &panicError{value: v, stack: debug.Stack()}, time.Since(start))
				panic(v)
			}
		}()
		next.ServeHTTP(rec, r)
		i.callbacks.Post(id, r, rec.status, time.Since(start))
	})
}

// panicError carries a recovered panic value and the stack captured at
// recovery through the exception logger. The original value, not the
// wrapper, is what gets re-raised.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
