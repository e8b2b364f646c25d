package input

import (
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// csiKeys maps the final byte of ESC [ x and ESC O x sequences
var csiKeys = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
}

// EscapeDelay is how long a trailing ESC waits for the rest of a sequence
// before it counts as the Escape key
const EscapeDelay = 50 * time.Millisecond

// Decode splits raw terminal bytes into keys
// An incomplete escape sequence or UTF-8 rune at the end is returned as rest
// for the caller to prepend to the next read. That includes a lone ESC ending the
// buffer, which may start an arrow sequence split across reads; see PendingEscape
func Decode(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == 0x1b:
			if i+1 == len(buf) {
				return keys, buf[i:]
			}
			if next := buf[i+1]; next != '[' && next != 'O' {
				keys = append(keys, Key{Code: tcell.KeyEsc})
				i++
				continue
			}
			// ESC [ params final
			j := i + 2
			for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
				j++
			}
			if j == len(buf) {
				return keys, buf[i:]
			}
			if k, ok := csiKeys[buf[j]]; ok {
				keys = append(keys, Key{Code: k})
			}
			i = j + 1

		case b == '\r' || b == '\n':
			keys = append(keys, Key{Code: tcell.KeyEnter})
			// Treat CRLF as one key
			if b == '\r' && i+1 < len(buf) && buf[i+1] == '\n' {
				i++
			}
			i++

		case b == 0x7f || b == 0x08:
			keys = append(keys, Key{Code: tcell.KeyBackspace2})
			i++

		case b < 0x20:
			// Remaining C0 controls map onto tcell's Ctrl keys by value
			keys = append(keys, Key{Code: tcell.Key(b)})
			i++

		default:
			if !utf8.FullRune(buf[i:]) {
				return keys, buf[i:]
			}
			r, size := utf8.DecodeRune(buf[i:])
			keys = append(keys, Key{Code: tcell.KeyRune, Rune: r})
			i += size
		}
	}
	return keys, nil
}

// PendingEscape reports whether rest is a lone ESC
// If no input follows within EscapeDelay the caller emits the Escape key
func PendingEscape(rest []byte) bool {
	return len(rest) == 1 && rest[0] == 0x1b
}
