// Package term implements the interactive document manager: raw keyboard
// decoding, width-adaptive layout, the selection and filter model, frame
// rendering, and the session state machine that ties them together.
package term

import "encoding/hex"

// Named key events produced by Decode.
const (
	KeyTab       = "tab"
	KeyReturn    = "return"
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyEscSeq    = "escape-sequence"
	KeyUnknown   = "unknown"
)

// Key is one decoded keyboard event. Raw holds the exact bytes read from
// the terminal and Sequence their hex encoding, kept for diagnostics.
type Key struct {
	Name     string
	Ctrl     bool
	Raw      []byte
	Sequence string
}

// Decode converts one chunk of terminal input into a key event. A chunk is
// whatever a single read delivered; escape sequences split across reads are
// not reassembled.
func Decode(chunk []byte) Key {
	k := Key{
		Name:     KeyUnknown,
		Raw:      chunk,
		Sequence: hex.EncodeToString(chunk),
	}

	if len(chunk) == 1 {
		b := chunk[0]
		switch b {
		case 9:
			k.Name = KeyTab
		case 13:
			k.Name = KeyReturn
		case 27:
			k.Name = KeyEscape
		case 127:
			k.Name = KeyBackspace
		default:
			switch {
			case b >= 1 && b <= 26:
				k.Name = string(rune(b + 96))
				k.Ctrl = true
			case b >= 32 && b <= 126:
				k.Name = string(rune(b))
			}
		}
		return k
	}

	if len(chunk) == 3 && chunk[0] == 27 && chunk[1] == '[' {
		switch chunk[2] {
		case 'A':
			k.Name = KeyUp
		case 'B':
			k.Name = KeyDown
		case 'C':
			k.Name = KeyRight
		case 'D':
			k.Name = KeyLeft
		}
		if k.Name != KeyUnknown {
			return k
		}
	}

	if len(chunk) > 0 && chunk[0] == 27 {
		k.Name = KeyEscSeq
	}
	return k
}
