package net

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
)

// DefaultMaxLineLength bounds a single client command.
const DefaultMaxLineLength = 1024

// NewLineScanner splits r into command lines. A trailing '\r' is dropped and
// a line longer than maxLen fails the scan with bufio.ErrTooLong.
func NewLineScanner(r io.Reader, maxLen int) *bufio.Scanner {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(maxLen, 4096)), maxLen)
	sc.Split(bufio.ScanLines)
	return sc
}

// WriteFrame writes one complete frame to w. Frames carry no length prefix;
// the client reads whatever arrives after each event.
func WriteFrame(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("write frame (%d/%d bytes): %w", n, len(data), err)
	}
	return nil
}

// IsDisconnect reports whether err means the peer went away or the
// connection was closed locally, as opposed to a transport failure.
func IsDisconnect(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, os.ErrDeadlineExceeded),
		errors.Is(err, bufio.ErrTooLong):
		return true
	}
	return false
}
