// Package fifo implements the three named-pipe protocols: the inbound
// command grammar (NAME (WS ARG)* LF), the outbound arrangement/event
// line format (A|id,x,y,w,h,sel,min,died|...\n, K<esc>\n, E<esc>\n),
// and the inbound status-bar byte stream. It also owns the mkfifo/open
// plumbing for all three pipes.
package fifo

import (
	"bufio"
	"io"
)

// MaxArgs is the most arguments the grammar ever collects; anything
// past this is discarded without affecting where the next command
// starts.
const MaxArgs = 3

// Command is one parsed command-FIFO invocation.
type Command struct {
	Name string
	Args []string
}

// CommandReader parses NAME (WS ARG)* LF lines off an underlying
// reader one command at a time. A malformed line never desyncs the
// stream: parsing always resumes at the byte after the next LF.
type CommandReader struct {
	r *bufio.Reader
}

// NewCommandReader wraps r for command parsing.
func NewCommandReader(r io.Reader) *CommandReader {
	return &CommandReader{r: bufio.NewReader(r)}
}

// Next reads and parses the next command line. It returns io.EOF (or
// the underlying read error) once the FIFO is exhausted or closed;
// per the protocol, the caller must not attempt to reopen it.
func (cr *CommandReader) Next() (Command, error) {
	line, err := cr.r.ReadString('\n')
	if line == "" {
		return Command{}, err
	}
	cmd := parseLine(line)
	// err may be non-nil (e.g. io.EOF with a trailing unterminated
	// line); the open question in the design notes treats end-of-buffer
	// as an implicit terminator for that last command, so we still
	// return it successfully and surface err on the *next* call.
	if err != nil && err != io.EOF {
		return cmd, err
	}
	return cmd, nil
}

// parseLine implements the grammar over a single line (LF included or
// this being the final, unterminated chunk of the stream).
func parseLine(line string) Command {
	i := 0
	n := len(line)

	skipWS := func() {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}
	atLineEnd := func() bool {
		return i >= n || line[i] == '\n' || line[i] == '\r'
	}

	skipWS()
	nameStart := i
	for i < n && line[i] != ' ' && line[i] != '\t' && line[i] != '\n' && line[i] != '\r' {
		i++
	}
	name := line[nameStart:i]
	if name == "" {
		return Command{}
	}

	var args []string
	for len(args) < MaxArgs {
		skipWS()
		if atLineEnd() {
			break
		}
		if line[i] == '\'' || line[i] == '"' {
			arg, next := readQuoted(line, i)
			args = append(args, arg)
			i = next
			continue
		}
		arg, next := readBareword(line, i)
		args = append(args, arg)
		i = next
	}
	// Excess arguments (and any trailing garbage) are discarded; the
	// reader already consumed the whole line via ReadString, so there
	// is nothing further to skip here.
	return Command{Name: name, Args: args}
}

// readBareword reads an unquoted argument delimited by unescaped
// whitespace or LF. A backslash escapes the following byte, which lets
// a bareword embed a literal space (e.g. `a\ b` parses as one argument
// "a b") without requiring quotes.
func readBareword(line string, i int) (string, int) {
	n := len(line)
	var out []byte
	for i < n && line[i] != ' ' && line[i] != '\t' && line[i] != '\n' && line[i] != '\r' {
		if line[i] == '\\' && i+1 < n {
			out = append(out, line[i+1])
			i += 2
			continue
		}
		out = append(out, line[i])
		i++
	}
	return string(out), i
}

func readQuoted(line string, i int) (string, int) {
	quote := line[i]
	i++
	n := len(line)
	var out []byte
	for i < n && line[i] != quote && line[i] != '\n' {
		if line[i] == '\\' && i+1 < n && (line[i+1] == '\\' || line[i+1] == '\'' || line[i+1] == '"') {
			out = append(out, line[i+1])
			i += 2
			continue
		}
		out = append(out, line[i])
		i++
	}
	if i < n && line[i] == quote {
		i++ // consume closing quote
	}
	return string(out), i
}
