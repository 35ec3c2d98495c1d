// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input tracks keyboard and mouse state between frames.

A window feeds events into a State through SetKey, SetButton, SetCursor
and SetScroll. Once per frame, before events are polled, the window
calls Cache; a key is then "pressed" when it is down now and was up at
the last Cache.
*/
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/willf/bitset"
)

// State is the input state of one window.
type State struct {
	keys          *bitset.BitSet
	cachedKeys    *bitset.BitSet
	buttons       *bitset.BitSet
	cachedButtons *bitset.BitSet

	cursor       mgl32.Vec2
	cachedCursor mgl32.Vec2
	scroll       mgl32.Vec2
	// moved is set by the first cursor event, so that the first delta
	// does not jump from the origin.
	moved bool
}

func NewState() *State {
	return &State{
		keys:          bitset.New(uint(keyCount)),
		cachedKeys:    bitset.New(uint(keyCount)),
		buttons:       bitset.New(uint(buttonCount)),
		cachedButtons: bitset.New(uint(buttonCount)),
	}
}

// SetKey records a key transition. Unknown keys are ignored.
func (s *State) SetKey(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	s.keys.SetTo(uint(k), down)
}

// SetButton records a mouse button transition. Unknown buttons are
// ignored.
func (s *State) SetButton(b Button, down bool) {
	if b <= ButtonUnknown || b >= buttonCount {
		return
	}
	s.buttons.SetTo(uint(b), down)
}

// SetCursor records the cursor position in window coordinates.
func (s *State) SetCursor(x, y float32) {
	s.cursor = mgl32.Vec2{x, y}
	if !s.moved {
		s.cachedCursor = s.cursor
		s.moved = true
	}
}

// SetScroll records a scroll offset. Offsets accumulate until the
// next Cache.
func (s *State) SetScroll(x, y float32) {
	s.scroll = s.scroll.Add(mgl32.Vec2{x, y})
}

// Cache snapshots the current state as the previous frame's state and
// zeroes the scroll delta.
func (s *State) Cache() {
	s.keys.Copy(s.cachedKeys)
	s.buttons.Copy(s.cachedButtons)
	s.cachedCursor = s.cursor
	s.scroll = mgl32.Vec2{}
}

func (s *State) KeyDown(k Key) bool {
	return k > KeyUnknown && k < keyCount && s.keys.Test(uint(k))
}

// KeyPressed reports whether k went down since the last Cache.
func (s *State) KeyPressed(k Key) bool {
	return s.KeyDown(k) && !s.cachedKeys.Test(uint(k))
}

func (s *State) ButtonDown(b Button) bool {
	return b > ButtonUnknown && b < buttonCount && s.buttons.Test(uint(b))
}

// ButtonPressed reports whether b went down since the last Cache.
func (s *State) ButtonPressed(b Button) bool {
	return s.ButtonDown(b) && !s.cachedButtons.Test(uint(b))
}

func (s *State) CursorPosition() mgl32.Vec2 {
	return s.cursor
}

// CursorDelta returns the cursor movement since the last Cache.
func (s *State) CursorDelta() mgl32.Vec2 {
	return s.cursor.Sub(s.cachedCursor)
}

// ScrollDelta returns the scroll offset accumulated since the last
// Cache.
func (s *State) ScrollDelta() mgl32.Vec2 {
	return s.scroll
}

// KeysDown returns the keys currently held, in enumeration order.
func (s *State) KeysDown() []Key {
	var keys []Key
	for i, ok := s.keys.NextSet(0); ok; i, ok = s.keys.NextSet(i + 1) {
		keys = append(keys, Key(i))
	}
	return keys
}
