package input

import (
	"bufio"
	"io"
	"time"
)

// Stream delivers input bytes via a channel and decodes them into key events.
type Stream struct {
	ch     chan byte
	dec    *Decoder
	buf    []byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error, e.g. when the session ends.
func StartStream(r io.Reader, hold time.Duration) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		dec: NewDecoder(hold),
	}
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes without blocking and returns the key events
// they produce, including releases for keys that went quiet.
func (s *Stream) Poll(now time.Time) []Event {
	s.buf = s.buf[:0]
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}
	return s.dec.Feed(s.buf, now)
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}
