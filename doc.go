// Package reqtrace is an HTTP request-logging interceptor. It wraps a
// handler so every inbound request emits a correlated set of
// human-readable log lines: one before handling, and afterwards either
// a completion line with status and latency or an exception pair. Each
// request draws a random 16-bit id rendered as a deterministically
// colorized hex token, letting operators reconstruct one request's
// lifecycle from interleaved output.
//
// The interceptor is purely observational: responses pass through
// untouched, handler errors propagate unmodified after being logged,
// and panics are re-raised with their original value.
package reqtrace
