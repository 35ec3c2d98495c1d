// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"glint.dev/input"
)

var keys = map[glfw.Key]input.Key{
	glfw.KeyEscape:       input.KeyEscape,
	glfw.KeyF1:           input.KeyF1,
	glfw.KeyF2:           input.KeyF2,
	glfw.KeyF3:           input.KeyF3,
	glfw.KeyF4:           input.KeyF4,
	glfw.KeyF5:           input.KeyF5,
	glfw.KeyF6:           input.KeyF6,
	glfw.KeyF7:           input.KeyF7,
	glfw.KeyF8:           input.KeyF8,
	glfw.KeyF9:           input.KeyF9,
	glfw.KeyF10:          input.KeyF10,
	glfw.KeyF11:          input.KeyF11,
	glfw.KeyF12:          input.KeyF12,
	glfw.KeyGraveAccent:  input.KeyGrave,
	glfw.Key1:            input.Key1,
	glfw.Key2:            input.Key2,
	glfw.Key3:            input.Key3,
	glfw.Key4:            input.Key4,
	glfw.Key5:            input.Key5,
	glfw.Key6:            input.Key6,
	glfw.Key7:            input.Key7,
	glfw.Key8:            input.Key8,
	glfw.Key9:            input.Key9,
	glfw.Key0:            input.Key0,
	glfw.KeyMinus:        input.KeyMinus,
	glfw.KeyEqual:        input.KeyEqual,
	glfw.KeyBackspace:    input.KeyBackspace,
	glfw.KeyTab:          input.KeyTab,
	glfw.KeyQ:            input.KeyQ,
	glfw.KeyW:            input.KeyW,
	glfw.KeyE:            input.KeyE,
	glfw.KeyR:            input.KeyR,
	glfw.KeyT:            input.KeyT,
	glfw.KeyY:            input.KeyY,
	glfw.KeyU:            input.KeyU,
	glfw.KeyI:            input.KeyI,
	glfw.KeyO:            input.KeyO,
	glfw.KeyP:            input.KeyP,
	glfw.KeyLeftBracket:  input.KeyLeftBracket,
	glfw.KeyRightBracket: input.KeyRightBracket,
	glfw.KeyBackslash:    input.KeyBackslash,
	glfw.KeyCapsLock:     input.KeyCapsLock,
	glfw.KeyA:            input.KeyA,
	glfw.KeyS:            input.KeyS,
	glfw.KeyD:            input.KeyD,
	glfw.KeyF:            input.KeyF,
	glfw.KeyG:            input.KeyG,
	glfw.KeyH:            input.KeyH,
	glfw.KeyJ:            input.KeyJ,
	glfw.KeyK:            input.KeyK,
	glfw.KeyL:            input.KeyL,
	glfw.KeySemicolon:    input.KeySemicolon,
	glfw.KeyApostrophe:   input.KeyApostrophe,
	glfw.KeyEnter:        input.KeyEnter,
	glfw.KeyLeftShift:    input.KeyLeftShift,
	glfw.KeyZ:            input.KeyZ,
	glfw.KeyX:            input.KeyX,
	glfw.KeyC:            input.KeyC,
	glfw.KeyV:            input.KeyV,
	glfw.KeyB:            input.KeyB,
	glfw.KeyN:            input.KeyN,
	glfw.KeyM:            input.KeyM,
	glfw.KeyComma:        input.KeyComma,
	glfw.KeyPeriod:       input.KeyPeriod,
	glfw.KeySlash:        input.KeySlash,
	glfw.KeyRightShift:   input.KeyRightShift,
	glfw.KeyLeftControl:  input.KeyLeftControl,
	glfw.KeyLeftAlt:      input.KeyLeftAlt,
	glfw.KeySpace:        input.KeySpace,
	glfw.KeyRightAlt:     input.KeyRightAlt,
	glfw.KeyRightControl: input.KeyRightControl,
	glfw.KeyInsert:       input.KeyInsert,
	glfw.KeyHome:         input.KeyHome,
	glfw.KeyPageUp:       input.KeyPageUp,
	glfw.KeyDelete:       input.KeyDelete,
	glfw.KeyEnd:          input.KeyEnd,
	glfw.KeyPageDown:     input.KeyPageDown,
	glfw.KeyLeft:         input.KeyLeft,
	glfw.KeyUp:           input.KeyUp,
	glfw.KeyDown:         input.KeyDown,
	glfw.KeyRight:        input.KeyRight,
}

// keyFor returns input.KeyUnknown for unmapped keys.
func keyFor(k glfw.Key) input.Key {
	return keys[k]
}

func buttonFor(b glfw.MouseButton) input.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	case glfw.MouseButtonRight:
		return input.ButtonRight
	}
	return input.ButtonUnknown
}
