// Package keypad implements the CHIP-8's 16-key hex keypad latch: the
// shared state crossed by the background input worker (writer) and
// the CPU's EX9E/EXA1/FX0A handlers (readers).
//
// The teacher repo's keyboard.go drained a channel of termbox events
// in a background goroutine. Here the background goroutine (pollKeys
// in cmd/chip8) passes each key event straight to Latch.Handle, which
// updates a mutex-protected table of timestamped slots, so that a key
// "stays pressed" across several CPU cycles the way a physical key does.
package keypad

import (
	"sync"
	"time"
)

// ReleaseWindow is how long a slot stays latched "pressed" after its
// most recent press timestamp before auto-releasing. Terminal input is
// line-buffered/raw without key-up events, so this compensates.
const ReleaseWindow = 150 * time.Millisecond

// KeyMap translates a host character to a CHIP-8 hex key index.
// Unmapped characters are not present in the map.
var KeyMap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'y': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// escKey requests a clean shutdown when received.
const escKey = rune(0x1B)

type slot struct {
	pressed   bool
	pressedAt time.Time
}

// Latch is the 16-slot press-timestamp table. Construct it with New,
// which creates the channel that Done returns and ESC closes. Handle
// must be called from a single writer goroutine; Pressed/AnyPressed
// may be called concurrently from the CPU goroutine.
type Latch struct {
	mu       sync.Mutex
	slots    [16]slot
	now      func() time.Time
	shutdown chan struct{}
	once     sync.Once
}

// New returns a ready-to-use Latch.
func New() *Latch {
	return &Latch{now: time.Now, shutdown: make(chan struct{})}
}

// Handle processes one host character per the press protocol: if the
// character maps to a key, clear all slots, then latch that slot
// pressed with the current timestamp. Unmapped characters other than
// ESC are ignored and leave the slots untouched. ESC closes Done and
// is reported via the returned bool so callers can stop polling.
func (l *Latch) Handle(ch rune) (shutdown bool) {
	if ch == escKey {
		l.requestShutdown()
		return true
	}

	key, ok := KeyMap[ch]
	if !ok {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.slots {
		l.slots[i] = slot{}
	}
	l.slots[key] = slot{pressed: true, pressedAt: l.clock()}
	return false
}

func (l *Latch) requestShutdown() {
	l.once.Do(func() { close(l.shutdown) })
}

// Done returns a channel that is closed once ESC has been handled.
func (l *Latch) Done() <-chan struct{} {
	return l.shutdown
}

func (l *Latch) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

// Pressed reports whether key is currently latched, auto-releasing it
// first if its timestamp has aged past ReleaseWindow.
func (l *Latch) Pressed(key byte) bool {
	if key >= 16 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releaseStale(int(key))
	return l.slots[key].pressed
}

// AnyPressed returns the lowest-indexed latched key, auto-releasing
// stale slots along the way.
func (l *Latch) AnyPressed() (byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.slots {
		l.releaseStale(i)
		if l.slots[i].pressed {
			return byte(i), true
		}
	}
	return 0, false
}

// releaseStale clears slot i if its press has aged past ReleaseWindow.
// Callers must hold l.mu.
func (l *Latch) releaseStale(i int) {
	s := l.slots[i]
	if s.pressed && l.clock().Sub(s.pressedAt) > ReleaseWindow {
		l.slots[i] = slot{}
	}
}
