package log

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscript_SplitsLines(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranscript(&buf)

	w := StreamWriter(tr, "stderr")
	_, _ = fmt.Fprint(w, "error: one\r\nerror: two\n")
	assert.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasSuffix(lines[0], " stderr: error: one"), lines[0])
		assert.True(t, strings.HasSuffix(lines[1], " stderr: error: two"), lines[1])
	}
}

func TestTranscript_JoinsPartialWrites(t *testing.T) {
	var buf bytes.Buffer
	w := StreamWriter(NewTranscript(&buf), "stdout")

	for _, chunk := range []string{"hel", "lo\nwor"} {
		n, err := w.Write([]byte(chunk))
		assert.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "partial line is held back")

	assert.NoError(t, w.Close())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasSuffix(lines[0], " stdout: hello"), lines[0])
		assert.True(t, strings.HasSuffix(lines[1], " stdout: wor"), lines[1])
	}

	assert.NoError(t, w.Close())
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2, "second close is a no-op")
}

func TestTranscript_NilWriterAndEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTranscript(nil).Log("stdout", []byte("dropped"))
	})

	var buf bytes.Buffer
	NewTranscript(&buf).Log("stdout", nil)
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, ParseLevel("info"), ParseLevel("bogus"))
	assert.Less(t, int(ParseLevel("debug")), int(ParseLevel("warn")))
}
