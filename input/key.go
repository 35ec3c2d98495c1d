// SPDX-License-Identifier: Unlicense OR MIT

package input

import "strconv"

type Key uint8

type Button uint8

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyGrave
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyBackspace
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyApostrophe
	KeyEnter
	KeyLeftShift
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeySlash
	KeyRightShift
	KeyLeftControl
	KeyLeftAlt
	KeySpace
	KeyRightAlt
	KeyRightControl
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyLeft
	KeyUp
	KeyDown
	KeyRight

	keyCount
)

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight

	buttonCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown", KeyEscape: "Escape",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
	KeyGrave: "`",
	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",
	KeyMinus: "-", KeyEqual: "=", KeyBackspace: "Backspace", KeyTab: "Tab",
	KeyQ: "Q", KeyW: "W", KeyE: "E", KeyR: "R", KeyT: "T", KeyY: "Y",
	KeyU: "U", KeyI: "I", KeyO: "O", KeyP: "P",
	KeyLeftBracket: "[", KeyRightBracket: "]", KeyBackslash: "\\", KeyCapsLock: "CapsLock",
	KeyA: "A", KeyS: "S", KeyD: "D", KeyF: "F", KeyG: "G", KeyH: "H",
	KeyJ: "J", KeyK: "K", KeyL: "L",
	KeySemicolon: ";", KeyApostrophe: "'", KeyEnter: "Enter", KeyLeftShift: "LeftShift",
	KeyZ: "Z", KeyX: "X", KeyC: "C", KeyV: "V", KeyB: "B", KeyN: "N", KeyM: "M",
	KeyComma: ",", KeyPeriod: ".", KeySlash: "/", KeyRightShift: "RightShift",
	KeyLeftControl: "LeftControl", KeyLeftAlt: "LeftAlt", KeySpace: "Space",
	KeyRightAlt: "RightAlt", KeyRightControl: "RightControl",
	KeyInsert: "Insert", KeyHome: "Home", KeyPageUp: "PageUp", KeyDelete: "Delete",
	KeyEnd: "End", KeyPageDown: "PageDown",
	KeyLeft: "←", KeyUp: "↑", KeyDown: "↓", KeyRight: "→",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	}
	return "Button(" + strconv.Itoa(int(b)) + ")"
}
