package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter forwards writes to an underlying writer, except while held:
// then writes are buffered until Release. It keeps console output from
// drawing over a full-screen program. Safe for concurrent use.
type DeferredWriter struct {
	mu   sync.Mutex
	out  io.Writer
	buf  bytes.Buffer
	held bool
}

// NewDeferredWriter returns a writer that passes through to out.
func NewDeferredWriter(out io.Writer) *DeferredWriter {
	return &DeferredWriter{out: out}
}

// Write passes p through, or buffers it while held.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held || d.out == nil {
		return d.buf.Write(p)
	}
	return d.out.Write(p)
}

// Hold starts buffering writes.
func (d *DeferredWriter) Hold() {
	d.mu.Lock()
	d.held = true
	d.mu.Unlock()
}

// Release writes everything buffered to the underlying writer and resumes
// passing writes through.
func (d *DeferredWriter) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.held = false
	if d.buf.Len() == 0 || d.out == nil {
		return nil
	}

	_, err := d.buf.WriteTo(d.out)
	return err
}

// Len returns the number of buffered bytes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}
