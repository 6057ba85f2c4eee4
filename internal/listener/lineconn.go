package listener

import (
	"bytes"
	"io"
)

// lineConn normalizes console line endings. Reads turn CRLF, CR NUL and a
// bare CR into LF, remembering a trailing CR so a pair split across two
// reads still yields one line. Writes expand LF to CRLF.
type lineConn struct {
	rw      io.ReadWriter
	afterCR bool
}

func newLineConn(rw io.ReadWriter) *lineConn {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		out := 0
		for _, b := range p[:n] {
			if c.afterCR {
				c.afterCR = false
				if b == '\n' || b == 0 {
					continue
				}
			}
			if b == '\r' {
				c.afterCR = true
				b = '\n'
			}
			p[out] = b
			out++
		}
		// A read made only of swallowed bytes is retried rather than
		// returned empty.
		if out > 0 || n == 0 || err != nil {
			return out, err
		}
	}
}

func (c *lineConn) Write(p []byte) (int, error) {
	buf := make([]byte, 0, len(p)+bytes.Count(p, []byte{'\n'}))
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			buf = append(buf, '\r')
		}
		buf = append(buf, b)
	}

	_, err := c.rw.Write(buf)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
