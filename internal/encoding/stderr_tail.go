package encoding

import (
	"bytes"
	"strings"
	"sync"
)

// DefaultDiagnosticLines is how many trailing stderr lines a failed encode
// reports. ffmpeg prints the actionable error last.
const DefaultDiagnosticLines = 12

// tailWriter keeps the last max lines written to it. Older lines are dropped
// as they arrive, so memory stays bounded for chatty encodes.
type tailWriter struct {
	mu      sync.Mutex
	max     int
	ring    []string
	next    int
	full    bool
	partial []byte
}

func newTailWriter(max int) *tailWriter {
	if max <= 0 {
		max = DefaultDiagnosticLines
	}
	return &tailWriter{max: max, ring: make([]string, max)}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := p
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			w.partial = append(w.partial, data...)
			break
		}
		line := append(w.partial, data[:idx]...)
		w.push(string(line))
		w.partial = w.partial[:0]
		data = data[idx+1:]
	}
	return len(p), nil
}

func (w *tailWriter) push(line string) {
	w.ring[w.next] = strings.TrimSuffix(line, "\r")
	w.next = (w.next + 1) % w.max
	if w.next == 0 {
		w.full = true
	}
}

// Lines returns the retained lines oldest first, including an unterminated
// final line.
func (w *tailWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []string
	if w.full {
		out = append(out, w.ring[w.next:]...)
	}
	out = append(out, w.ring[:w.next]...)
	if len(w.partial) > 0 {
		out = append(out, strings.TrimSuffix(string(w.partial), "\r"))
		if len(out) > w.max {
			out = out[len(out)-w.max:]
		}
	}
	return out
}

func (w *tailWriter) String() string {
	return strings.Join(w.Lines(), "\n")
}

// TailLines returns the last count lines of text in their original order.
func TailLines(text string, count int) string {
	w := newTailWriter(count)
	_, _ = w.Write([]byte(text))
	return w.String()
}
