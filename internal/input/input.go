// Package input maps raw key presses onto game events and tracks which keys are held.
package input

// Key identifies a key the game reacts to.
type Key int

// Keys understood by the game. Hosts translate their native key codes to these.
const (
	KeyUnknown Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyA
	KeyD
	KeyW
	KeyS
	KeyEnter
	KeyQ // Quit, handled by the host

	numKeys
)

var keyNames = [numKeys]string{
	KeyUnknown:    "Unknown",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeyA:          "A",
	KeyD:          "D",
	KeyW:          "W",
	KeyS:          "S",
	KeyEnter:      "Enter",
	KeyQ:          "Q",
}

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// Event is a key edge: a press or a release.
type Event struct {
	Key     Key
	Pressed bool
}

// Press returns a press event for k.
func Press(k Key) Event { return Event{Key: k, Pressed: true} }

// Release returns a release event for k.
func Release(k Key) Event { return Event{Key: k, Pressed: false} }

// State is the set of keys currently held down.
type State struct {
	held [numKeys]bool
}

// Apply records a key edge. Unknown keys are ignored.
func (s *State) Apply(e Event) {
	if e.Key <= KeyUnknown || e.Key >= numKeys {
		return
	}
	s.held[e.Key] = e.Pressed
}

// Held reports whether k is down.
func (s *State) Held(k Key) bool {
	if k <= KeyUnknown || k >= numKeys {
		return false
	}
	return s.held[k]
}

// Reset releases every key.
func (s *State) Reset() {
	s.held = [numKeys]bool{}
}

// Axis returns the steering direction from the held keys, each -1, 0 or 1.
// When both keys of an axis are held, right and down win.
func (s *State) Axis() (h, v int) {
	if s.held[KeyArrowLeft] || s.held[KeyA] {
		h = -1
	}
	if s.held[KeyArrowRight] || s.held[KeyD] {
		h = 1
	}
	if s.held[KeyArrowUp] || s.held[KeyW] {
		v = -1
	}
	if s.held[KeyArrowDown] || s.held[KeyS] {
		v = 1
	}
	return h, v
}
