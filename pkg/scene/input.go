package scene

// MouseButton is a single pointer button.
type MouseButton uint16

const (
	ButtonNone MouseButton = 0
	ButtonLeft MouseButton = 1 << (iota - 1)
	ButtonMiddle
	ButtonRight
)

// MouseButtons is the set of buttons held during a move.
type MouseButtons uint16

func (mb MouseButtons) Has(b MouseButton) bool {
	return mb&MouseButtons(b) > 0
}
func (mb MouseButtons) Is(b MouseButton) bool {
	return mb == MouseButtons(b)
}

// ButtonsFromDOM converts a DOM MouseEvent.buttons bitmask, where the
// secondary button is bit 1 and the auxiliary button bit 2.
func ButtonsFromDOM(b int) MouseButtons {
	var mb MouseButtons
	if b&1 != 0 {
		mb |= MouseButtons(ButtonLeft)
	}
	if b&2 != 0 {
		mb |= MouseButtons(ButtonRight)
	}
	if b&4 != 0 {
		mb |= MouseButtons(ButtonMiddle)
	}
	return mb
}

// ButtonFromDOM converts a DOM MouseEvent.button index.
func ButtonFromDOM(b int) MouseButton {
	switch b {
	case 0:
		return ButtonLeft
	case 1:
		return ButtonMiddle
	case 2:
		return ButtonRight
	}
	return ButtonNone
}

//----------

type KeyModifiers uint16

func (km KeyModifiers) HasAny(m KeyModifiers) bool {
	return km&m > 0
}
func (km KeyModifiers) Is(m KeyModifiers) bool {
	return km == m
}

const (
	ModNone  KeyModifiers = 0
	ModShift KeyModifiers = 1 << (iota - 1)
	ModCtrl
	ModAlt
)

// ModsFromDOM builds modifiers from the DOM event flags.
func ModsFromDOM(shift, ctrl, alt bool) KeyModifiers {
	var km KeyModifiers
	if shift {
		km |= ModShift
	}
	if ctrl {
		km |= ModCtrl
	}
	if alt {
		km |= ModAlt
	}
	return km
}

//----------

type Key int

const (
	KeyNone Key = iota
	KeyDelete
	KeyEscape
)

// KeyFromDOM maps a DOM KeyboardEvent.key value.
func KeyFromDOM(key string) Key {
	switch key {
	case "Delete":
		return KeyDelete
	case "Escape":
		return KeyEscape
	}
	return KeyNone
}
