package input

import (
	"time"
)

// DefaultHoldDuration is how long a key counts as held after its last byte.
// Terminals report no key-up, so releases are synthesised from silence.
const DefaultHoldDuration = 120 * time.Millisecond

// Decoder turns raw terminal bytes into key events.
type Decoder struct {
	hold     time.Duration
	lastSeen [numKeys]time.Time
	down     [numKeys]bool
	pending  []byte // Incomplete escape sequence carried to the next Feed
}

// NewDecoder creates a decoder that releases keys after hold without input.
func NewDecoder(hold time.Duration) *Decoder {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Decoder{hold: hold}
}

// Feed parses buf received at now and returns the resulting events: a press
// for every key that was not already down, then releases for keys that have
// gone quiet for longer than the hold duration.
func (d *Decoder) Feed(buf []byte, now time.Time) []Event {
	var events []Event
	if len(d.pending) > 0 {
		buf = append(d.pending, buf...)
		d.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// CSI sequence: ESC [ <code>
			if i+1 == len(buf) || (buf[i+1] == '[' && i+2 == len(buf)) {
				d.pending = append(d.pending[:0], buf[i:]...)
				break
			}
			if buf[i+1] == '[' {
				if k := arrowKey(buf[i+2]); k != KeyUnknown {
					events = d.see(events, k, now)
				}
				i += 2
			}
			continue
		}

		if k := byteKey(b); k != KeyUnknown {
			events = d.see(events, k, now)
		}
	}

	return append(events, d.Expire(now)...)
}

// Expire returns releases for held keys not seen within the hold duration.
func (d *Decoder) Expire(now time.Time) []Event {
	var events []Event
	for k := KeyUnknown + 1; k < numKeys; k++ {
		if d.down[k] && now.Sub(d.lastSeen[k]) >= d.hold {
			d.down[k] = false
			events = append(events, Release(k))
		}
	}
	return events
}

func (d *Decoder) see(events []Event, k Key, now time.Time) []Event {
	d.lastSeen[k] = now
	if d.down[k] {
		return events
	}
	d.down[k] = true
	return append(events, Press(k))
}

func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyArrowUp
	case 'B':
		return KeyArrowDown
	case 'C':
		return KeyArrowRight
	case 'D':
		return KeyArrowLeft
	}
	return KeyUnknown
}

func byteKey(b byte) Key {
	switch b {
	case 'a', 'A':
		return KeyA
	case 'd', 'D':
		return KeyD
	case 'w', 'W':
		return KeyW
	case 's', 'S':
		return KeyS
	case '\r', '\n':
		return KeyEnter
	case 'q', 'Q', '\x03':
		return KeyQ
	}
	return KeyUnknown
}
