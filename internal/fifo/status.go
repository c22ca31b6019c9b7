package fifo

import "strings"

// LastLine extracts the status bar's visible text from a chunk of
// bytes read off the status FIFO: the most recent complete
// (LF-terminated) line, with trailing newlines trimmed. If chunk has
// no LF at all, it is treated as a (so far) incomplete line and the
// previous text should be kept; callers pass the accumulated buffer in
// that case, so LastLine returns "" to signal "no new complete line".
func LastLine(chunk []byte) string {
	s := string(chunk)
	end := strings.LastIndexByte(s, '\n')
	if end < 0 {
		return ""
	}
	s = strings.TrimRight(s[:end+1], "\n")
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	return s
}
