package backend

import (
	"bufio"
	"errors"
	"io"
)

// LineReader is a specialized reader that ensures only entire newline-delimited lines are
// read at a time. This is useful when attempting to parse a file that is being actively
// written to as a CSV, as you don't actually attempt to parse any partial lines.
type LineReader struct {
	r       *bufio.Reader
	partial []byte
	pending []byte
}

var _ io.Reader = (*LineReader)(nil)

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r: bufio.NewReader(r),
	}
}

// Read returns io.EOF while only an unterminated line is available. Once the
// line is completed by later writes, it is returned in full.
func (l *LineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		l.pending, l.partial = l.partial, nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
