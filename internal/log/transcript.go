package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// Transcript records raw output of external tools, tagged by stream.
type Transcript interface {
	Log(stream string, data []byte)
}

// transcript implements Transcript with thread-safe writes.
type transcript struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTranscript creates a new Transcript. If writer is nil, returns a no-op transcript.
func NewTranscript(w io.Writer) Transcript {
	return &transcript{w: w}
}

// Log writes one timestamped line per line of data.
func (t *transcript) Log(stream string, data []byte) {
	if len(data) == 0 || t.w == nil {
		return
	}

	var buf bytes.Buffer
	ts := time.Now().Format("2006/01/02 15:04:05")
	for _, line := range bytes.Split(bytes.TrimRight(data, "\r\n"), []byte{'\n'}) {
		fmt.Fprintf(&buf, "%s %s: %s\n", ts, stream, bytes.TrimRight(line, "\r"))
	}

	t.mu.Lock()
	_, _ = t.w.Write(buf.Bytes())
	t.mu.Unlock()
}

// streamWriter holds back a trailing partial line until the rest of it
// arrives or the writer is closed.
type streamWriter struct {
	t       Transcript
	stream  string
	mu      sync.Mutex
	pending []byte
}

func (s *streamWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, p...)
	if i := bytes.LastIndexByte(s.pending, '\n'); i >= 0 {
		s.t.Log(s.stream, s.pending[:i+1])
		s.pending = append(s.pending[:0], s.pending[i+1:]...)
	}
	return len(p), nil
}

// Close logs whatever partial line is still buffered.
func (s *streamWriter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) > 0 {
		s.t.Log(s.stream, s.pending)
		s.pending = nil
	}
	return nil
}

// StreamWriter adapts a Transcript into a writer for the named stream. Output
// is logged line by line; Close flushes an unterminated last line.
func StreamWriter(t Transcript, stream string) io.WriteCloser {
	return &streamWriter{t: t, stream: stream}
}
