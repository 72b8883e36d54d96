package keypad

import (
	"testing"
	"time"
)

func newTestLatch(t0 time.Time) *Latch {
	l := New()
	l.now = func() time.Time { return t0 }
	return l
}

func TestHandlePressLatchesMappedKey(t *testing.T) {
	now := time.Now()
	l := newTestLatch(now)

	if shutdown := l.Handle('a'); shutdown {
		t.Fatal("Handle('a') reported shutdown")
	}

	if !l.Pressed(0x7) {
		t.Errorf("key 0x7 (mapped from 'a') should be pressed")
	}
	for k := byte(0); k < 16; k++ {
		if k == 0x7 {
			continue
		}
		if l.Pressed(k) {
			t.Errorf("key 0x%X should not be pressed", k)
		}
	}
}

func TestHandleClearsPreviousKeyOnNewPress(t *testing.T) {
	now := time.Now()
	l := newTestLatch(now)

	l.Handle('a') // 0x7
	l.Handle('x') // 0x0

	if l.Pressed(0x7) {
		t.Error("previous key should have been cleared by new press")
	}
	if !l.Pressed(0x0) {
		t.Error("new key should be pressed")
	}
}

func TestHandleUnmappedCharacterIgnored(t *testing.T) {
	l := New()
	l.Handle('a')
	if shutdown := l.Handle('!'); shutdown {
		t.Fatal("unmapped character should not request shutdown")
	}
	if !l.Pressed(0x7) {
		t.Error("unmapped character should leave existing latch untouched")
	}
}

func TestHandleEscRequestsShutdown(t *testing.T) {
	l := New()
	if shutdown := l.Handle(0x1B); !shutdown {
		t.Fatal("ESC should report shutdown")
	}
	select {
	case <-l.Done():
	default:
		t.Fatal("Done() should be closed after ESC")
	}
}

func TestAutoRelease(t *testing.T) {
	start := time.Now()
	l := New()
	cur := start
	l.now = func() time.Time { return cur }

	l.Handle('a') // 0x7
	if !l.Pressed(0x7) {
		t.Fatal("key should be pressed immediately after press")
	}

	cur = start.Add(ReleaseWindow + time.Millisecond)
	if l.Pressed(0x7) {
		t.Error("key should auto-release after ReleaseWindow elapses")
	}
}

func TestAnyPressedReturnsLowestIndex(t *testing.T) {
	l := New()
	l.Handle('1') // 0x1
	key, ok := l.AnyPressed()
	if !ok || key != 0x1 {
		t.Errorf("AnyPressed() = (%v, %v); want (0x1, true)", key, ok)
	}
}

func TestAnyPressedNoneLatched(t *testing.T) {
	l := New()
	if _, ok := l.AnyPressed(); ok {
		t.Error("AnyPressed() should report false when nothing is latched")
	}
}

func TestKeyMapCoversAllSixteenKeys(t *testing.T) {
	seen := make(map[byte]bool)
	for _, key := range KeyMap {
		seen[key] = true
	}
	for k := byte(0); k < 16; k++ {
		if !seen[k] {
			t.Errorf("no host character maps to key 0x%X", k)
		}
	}
}
