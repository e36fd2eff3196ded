package table

// streaming.go wraps raw file readers before they reach encoding/csv:
//
//   - skipBOM drops the UTF-8 byte order mark that spreadsheet exports prepend
//   - utf8Sanitizer replaces invalid UTF-8 bytes with '?' without buffering the file
//   - sizeLimitReader fails the load once MaxFileSize bytes have been read and
//     reports the raw byte count for the load summary log
//
// wrapInput applies all of them in the right order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after a leading UTF-8 BOM, if any.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Sanitizer rewrites invalid UTF-8 bytes to '?' in place. A multi-byte
// sequence split across two reads is carried over in pending.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	off := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[off:])
	n += off
	if n == 0 {
		return 0, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

func (s *utf8Sanitizer) sanitize(data []byte, atEOF bool) int {
	w := 0
	for r := 0; r < len(data); {
		if data[r] < utf8.RuneSelf {
			data[w] = data[r]
			w++
			r++
			continue
		}

		if !atEOF && !utf8.FullRune(data[r:]) {
			s.pending = append(s.pending, data[r:]...)
			return w
		}

		ch, size := utf8.DecodeRune(data[r:])
		if ch == utf8.RuneError && size == 1 {
			data[w] = '?'
			w++
			r++
			continue
		}
		copy(data[w:], data[r:r+size])
		w += size
		r += size
	}
	return w
}

// sizeLimitReader returns ErrFileTooLarge once more than max bytes are read.
// A max of zero or less disables the check.
type sizeLimitReader struct {
	r    io.Reader
	max  int64
	read int64
}

func (l *sizeLimitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.max > 0 && l.read > l.max {
		return n, ErrFileTooLarge
	}
	return n, err
}

// wrapInput strips the BOM, sanitises UTF-8 and enforces the size limit.
// The size limit sits closest to the file so it counts raw bytes.
func wrapInput(r io.Reader, maxSize int64) (io.Reader, *sizeLimitReader) {
	limited := &sizeLimitReader{r: r, max: maxSize}
	return newUTF8Sanitizer(skipBOM(limited)), limited
}
