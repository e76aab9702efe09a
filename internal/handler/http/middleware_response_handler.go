// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"sync"
)

// responseWriter is a thin decorator around [http.ResponseWriter] that
// intercepts WriteHeader and Write calls to capture response metadata.
//
// It is used by the access logger to observe the status code and the number
// of bytes written after the downstream handler has returned, and by the
// error adapter to tell whether a response was already produced.
//
// responseWriter forwards WriteHeader to the underlying writer exactly once;
// subsequent calls are silently ignored.
type responseWriter struct {
	http.ResponseWriter

	// status is the HTTP status code recorded on the first WriteHeader call.
	status int

	// wroteHeader reports whether WriteHeader has already been called.
	wroteHeader bool

	// size is the running total of bytes written to the response body.
	size int
}

// WriteHeader records the status code and forwards it to the underlying
// [http.ResponseWriter] exactly once.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write writes b to the underlying [http.ResponseWriter], implicitly sending
// a 200 header first when none was written.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// statusCode is the status the client observes. A handler that wrote nothing
// produces an implicit 200.
func (w *responseWriter) statusCode() int {
	if !w.wroteHeader {
		return http.StatusOK
	}
	return w.status
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// resettableWriter is implemented by writers that buffer the response and can
// discard it before anything reaches the client.
type resettableWriter interface {
	http.ResponseWriter
	// reset drops buffered headers, status and body. It reports false when
	// the writer no longer accepts output.
	reset() bool
}

// timeoutWriter buffers the response of a handler running under a deadline.
// Nothing reaches the client until flush is called; after timeout every
// write fails with [http.ErrHandlerTimeout].
type timeoutWriter struct {
	w http.ResponseWriter
	h http.Header

	mu          sync.Mutex
	buf         bytes.Buffer
	err         error
	wroteHeader bool
	code        int
}

var _ resettableWriter = (*timeoutWriter)(nil)

func newTimeoutWriter(w http.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{
		w: w,
		h: make(http.Header),
	}
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.err != nil {
		return 0, tw.err
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.buf.Write(p)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.err != nil || tw.wroteHeader {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	tw.wroteHeader = true
	tw.code = code
}

func (tw *timeoutWriter) reset() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.err != nil {
		return false
	}
	clear(tw.h)
	tw.buf.Reset()
	tw.wroteHeader = false
	tw.code = 0
	return true
}

// timeout makes every later write fail.
func (tw *timeoutWriter) timeout() {
	tw.mu.Lock()
	tw.err = http.ErrHandlerTimeout
	tw.mu.Unlock()
}

// flush copies the buffered response to the client.
func (tw *timeoutWriter) flush() {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
	if !tw.wroteHeader {
		tw.code = http.StatusOK
	}
	tw.w.WriteHeader(tw.code)
	_, _ = tw.w.Write(tw.buf.Bytes())
}
