package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSheetTooLarge is returned when an export exceeds the configured cap.
var ErrSheetTooLarge = errors.New("sheet too large")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark. Sheets exported by Excel
// and some gviz responses carry one, and it would otherwise end up glued to
// the first header.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// cappedReader counts bytes read and fails once more than max arrive.
type cappedReader struct {
	reader    io.Reader
	max       int64
	BytesRead int64
}

func (r *cappedReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	if r.max > 0 && r.BytesRead > r.max {
		return n, fmt.Errorf("%w: more than %d bytes", ErrSheetTooLarge, r.max)
	}
	return n, err
}

// readSheet reads a whole CSV export, enforcing maxBytes (0 means no cap),
// stripping a BOM and replacing invalid UTF-8 with '?'.
func readSheet(r io.Reader, maxBytes int64) (string, error) {
	capped := &cappedReader{reader: r, max: maxBytes}
	data, err := io.ReadAll(skipBOM(capped))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "?"), nil
}
