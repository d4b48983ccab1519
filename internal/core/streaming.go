package core

// streaming.go provides the reader chain every upload passes through before
// parsing:
//
//   - sizeLimitReader: fails with ErrFileTooLarge past the configured size
//   - sanitizingReader: drops a UTF-8 BOM and replaces invalid bytes with '?'
//
// Use WrapForParsing to apply both in the correct order.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitizingReader strips a leading UTF-8 BOM (common in files exported
// from Excel on Windows) and replaces every byte that is not part of a
// valid UTF-8 sequence with '?'. Memory use is bounded by the buffer size.
type sanitizingReader struct {
	src     *bufio.Reader
	bomDone bool
}

func newSanitizingReader(r io.Reader) *sanitizingReader {
	return &sanitizingReader{src: bufio.NewReader(r)}
}

// Read implements io.Reader. It never splits a multi-byte rune across calls.
func (s *sanitizingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !s.bomDone {
		s.bomDone = true
		if head, err := s.src.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = s.src.Discard(len(utf8BOM))
		}
	}

	n := 0
	for n < len(p) {
		r, size, err := s.src.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if r == utf8.RuneError && size == 1 {
			p[n] = '?'
			n++
			continue
		}
		if n+size > len(p) {
			if n == 0 {
				// p cannot hold a single rune; fall back to a placeholder.
				p[0] = '?'
				return 1, nil
			}
			_ = s.src.UnreadRune()
			break
		}
		n += utf8.EncodeRune(p[n:], r)
	}
	return n, nil
}

// sizeLimitReader fails once more than limit bytes have been read.
type sizeLimitReader struct {
	reader    io.Reader
	limit     int64
	BytesRead int64
}

// Read implements io.Reader.
func (r *sizeLimitReader) Read(p []byte) (int, error) {
	if r.limit > 0 && r.BytesRead > r.limit {
		return 0, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, r.limit)
	}
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	if r.limit > 0 && r.BytesRead > r.limit {
		return n, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, r.limit)
	}
	return n, err
}

// WrapForParsing wraps r with the size limit and sanitization stages.
// A limit of zero or less disables the size check.
//
// The size limit sits closest to the source so it counts raw upload bytes,
// not sanitized output.
func WrapForParsing(r io.Reader, limit int64) io.Reader {
	return newSanitizingReader(&sizeLimitReader{reader: r, limit: limit})
}
