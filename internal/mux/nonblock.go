package mux

import "golang.org/x/sys/unix"

// drainNonBlocking greedily reads up to max already-buffered bytes from
// fd without blocking, one unix.Read at a time guarded by a zero-timeout
// unix.Poll, so an escape sequence that arrived as a single write from
// the terminal is forwarded as one block instead of byte by byte. It
// never blocks: a fd with nothing immediately available stops the loop
// and returns whatever was collected so far (possibly nothing).
func drainNonBlocking(fd int, max int) []byte {
	var out []byte
	buf := make([]byte, 1)
	for len(out) < max {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 0)
		if err != nil || n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			break
		}
		rn, err := unix.Read(fd, buf)
		if rn <= 0 || err != nil {
			break
		}
		out = append(out, buf[0])
	}
	return out
}
