package listener

import (
	"bytes"
	"io"
)

// crlfReadWriter normalizes line endings in both directions. Reads turn
// "\r\n" and a bare "\r" into "\n", even when a "\r\n" pair is split across
// two reads. Writes turn "\n" into "\r\n".
type crlfReadWriter struct {
	rw io.ReadWriter
	// afterCR is set when the last byte read was '\r'.
	afterCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfReadWriter{rw: rw}
}

func (c *crlfReadWriter) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\r':
				p[out] = '\n'
				out++
				c.afterCR = true
			case b == '\n' && c.afterCR:
				c.afterCR = false
			default:
				p[out] = b
				out++
				c.afterCR = false
			}
		}
		// A read that was only the tail of a "\r\n" pair carries nothing.
		if out > 0 || n == 0 || err != nil {
			return out, err
		}
	}
}

func (c *crlfReadWriter) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Callers count the bytes they passed in.
	return len(p), err
}
