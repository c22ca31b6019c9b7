package input

import (
	"bytes"
	"testing"
)

func TestEscapeByteNamedForms(t *testing.T) {
	tests := []struct {
		b    byte
		want string
	}{
		{'\a', `\a`},
		{'\b', `\b`},
		{'\f', `\f`},
		{'\n', `\n`},
		{'\r', `\r`},
		{'\t', `\t`},
		{'\v', `\v`},
		{0x1b, `\e`},
		{0x00, `\0`},
		{'A', "A"},
		{' ', " "},
	}
	for _, tt := range tests {
		if got := EscapeByte(tt.b); got != tt.want {
			t.Errorf("EscapeByte(%#x) = %q, want %q", tt.b, got, tt.want)
		}
	}
}

func TestEscapeByteOctalForOtherControls(t *testing.T) {
	tests := []struct {
		b    byte
		want string
	}{
		{0x01, `\001`},
		{0x02, `\002`},
		{0x1f, `\037`},
	}
	for _, tt := range tests {
		if got := EscapeByte(tt.b); got != tt.want {
			t.Errorf("EscapeByte(%#x) = %q, want %q", tt.b, got, tt.want)
		}
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		orig := []byte{byte(b)}
		escaped := EscapeBytes(orig)
		got := UnescapeBytes(escaped)
		if !bytes.Equal(got, orig) {
			t.Errorf("round trip byte %#x: escaped=%q decoded=%q, want %q", b, escaped, got, orig)
		}
	}
}

func TestEscapeBytesBlock(t *testing.T) {
	in := []byte{0x1b, '[', 'A', 0x01}
	want := `\e[A\001`
	if got := EscapeBytes(in); got != want {
		t.Errorf("EscapeBytes(%v) = %q, want %q", in, got, want)
	}
	if got := UnescapeBytes(want); !bytes.Equal(got, in) {
		t.Errorf("UnescapeBytes(%q) = %v, want %v", want, got, in)
	}
}
