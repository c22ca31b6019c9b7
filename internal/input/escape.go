package input

import "fmt"

// shortEscapes maps the bytes with a canonical two-character C escape to
// that escape, per the wire encoding used for K/E event-FIFO lines.
var shortEscapes = map[byte]byte{
	'\a': 'a',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'\v': 'v',
	0x1b: 'e',
	0x00: '0',
}

// EscapeByte renders a single byte the way the event FIFO expects it:
// the nine named control bytes become their two-character form (\n,
// \e, ...) and any other sub-space byte becomes a three-digit octal
// escape (\ooo). Bytes >= 0x20 pass through unchanged.
func EscapeByte(b byte) string {
	if e, ok := shortEscapes[b]; ok {
		return string([]byte{'\\', e})
	}
	if b < 0x20 {
		return fmt.Sprintf("\\%03o", b)
	}
	return string([]byte{b})
}

// EscapeBytes escapes every byte of p and concatenates the result, the
// payload format for the K and E event-FIFO lines.
func EscapeBytes(p []byte) string {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		out = append(out, EscapeByte(b)...)
	}
	return string(out)
}

var longEscapes = map[byte]byte{
	'a': '\a',
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
	'e': 0x1b,
	'0': 0x00,
}

// UnescapeBytes reverses EscapeBytes. It is used by the FIFO-facing test
// suite to round-trip the wire encoding; the program itself never needs
// to decode its own event stream. EscapeBytes leaves a literal backslash
// unescaped, so input in which a backslash is followed by one of the
// characters a b f n r t v e 0 does not decode back to the
// original bytes; single bytes and inputs without a backslash do.
func UnescapeBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			out = append(out, s[i])
			continue
		}
		next := s[i+1]
		if next >= '0' && next <= '7' && i+4 <= len(s) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			var v int
			n, err := fmt.Sscanf(s[i+1:i+4], "%3o", &v)
			if err == nil && n == 1 {
				out = append(out, byte(v))
				i += 3
				continue
			}
		}
		if b, ok := longEscapes[next]; ok {
			out = append(out, b)
			i++
			continue
		}
		out = append(out, s[i])
	}
	return out
}

func isOctal(b byte) bool { return b >= '0' && b <= '7' }
