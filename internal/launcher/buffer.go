package launcher

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// Chunk is a span of terminal output. Err marks text produced by the
// launcher itself (start failures, pty errors) rather than the child.
type Chunk struct {
	Text string
	Err  bool
}

// Buffer is the scrollback behind the terminal panel. Appends coalesce
// into the previous chunk when the error flag matches, and the oldest
// output is dropped once the byte capacity is exceeded.
type Buffer struct {
	mu           sync.RWMutex
	chunks       []Chunk
	maxBytes     int
	size         int
	totalWritten int
}

func NewBuffer(maxBytes int) *Buffer {
	if maxBytes <= 0 {
		maxBytes = 256 * 1024
	}
	return &Buffer{maxBytes: maxBytes}
}

func (b *Buffer) Append(text string, isErr bool) {
	if text == "" {
		return
	}
	b.mu.Lock()
	if n := len(b.chunks); n > 0 && b.chunks[n-1].Err == isErr {
		b.chunks[n-1].Text += text
	} else {
		b.chunks = append(b.chunks, Chunk{Text: text, Err: isErr})
	}
	b.size += len(text)
	b.totalWritten += len(text)
	b.trimLocked()
	b.mu.Unlock()
}

// trimLocked drops the oldest output until the buffer fits its capacity,
// never cutting in the middle of a rune.
func (b *Buffer) trimLocked() {
	for b.size > b.maxBytes && len(b.chunks) > 0 {
		over := b.size - b.maxBytes
		head := &b.chunks[0]
		if over < len(head.Text) {
			for over < len(head.Text) && !utf8.RuneStart(head.Text[over]) {
				over++
			}
		}
		if over >= len(head.Text) {
			b.size -= len(head.Text)
			b.chunks = b.chunks[1:]
			continue
		}
		head.Text = head.Text[over:]
		b.size -= over
	}
}

// Chunks returns a copy of the buffered output spans, oldest first.
func (b *Buffer) Chunks() []Chunk {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.chunks) == 0 {
		return nil
	}
	result := make([]Chunk, len(b.chunks))
	copy(result, b.chunks)
	return result
}

// String returns all buffered output as one string.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	sb.Grow(b.size)
	for _, c := range b.chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Len returns the buffered size in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// TotalWritten returns the byte count of everything ever appended,
// including output that has since been trimmed.
func (b *Buffer) TotalWritten() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalWritten
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	b.chunks = nil
	b.size = 0
	b.totalWritten = 0
	b.mu.Unlock()
}
