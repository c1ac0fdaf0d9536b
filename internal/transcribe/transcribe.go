// Package transcribe turns speech into answer text using an external
// recognizer. Availability is detected once; when no recognizer exists only
// the voice toggle is disabled.
package transcribe

import (
	"context"
	"errors"
	"strings"
)

// Segment is one recognition result.
type Segment struct {
	Text       string  `json:"text"`
	Final      bool    `json:"final"`
	Confidence float32 `json:"confidence,omitempty"`
}

// UnsupportedMessage is shown when the voice toggle is used without a recognizer.
const UnsupportedMessage = "Speech recognition is not supported on this system."

var (
	ErrUnavailable = errors.New("speech recognition is not available")
	ErrActive      = errors.New("transcription already active")
)

// Transcriber produces segments while active.
type Transcriber interface {
	// Available reports whether Start can succeed.
	Available() bool

	// Start begins capture. The channel is closed when capture ends.
	Start(ctx context.Context) (<-chan Segment, error)

	// Stop ends capture. Stopping an inactive transcriber is a no-op.
	Stop() error

	Active() bool
}

// Noop is a Transcriber that is never available.
type Noop struct{}

func (Noop) Available() bool                               { return false }
func (Noop) Start(context.Context) (<-chan Segment, error) { return nil, ErrUnavailable }
func (Noop) Stop() error                                   { return nil }
func (Noop) Active() bool                                  { return false }

// Buffer merges segments into answer text. Final text accumulates; only the
// latest interim text is kept.
type Buffer struct {
	final   strings.Builder
	interim string
}

// Add merges one segment.
func (b *Buffer) Add(seg Segment) {
	if seg.Final {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			return
		}
		if b.final.Len() > 0 {
			b.final.WriteByte(' ')
		}
		b.final.WriteString(text)
		b.interim = ""
		return
	}
	b.interim = strings.TrimSpace(seg.Text)
}

// Answer is the text placed in the answer field: the final text if any,
// otherwise the interim text.
func (b *Buffer) Answer() string {
	if b.final.Len() > 0 {
		return b.final.String()
	}
	return b.interim
}

// Interim returns the latest unconfirmed text.
func (b *Buffer) Interim() string { return b.interim }

// Status is the recording indicator line.
func (b *Buffer) Status() string {
	if b.interim != "" {
		return "Listening: " + b.interim
	}
	return "Listening..."
}

// Reset discards all text.
func (b *Buffer) Reset() {
	b.final.Reset()
	b.interim = ""
}
