package dataprocessing

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// lineReader yields tab-split lines and tracks the byte offset of the
// stream, which is what the header/curve handoff is expressed in.
type lineReader struct {
	r      *bufio.Reader
	offset int64
	lineNo int
}

func newLineReader(r io.Reader, start int64) *lineReader {
	return &lineReader{r: bufio.NewReader(r), offset: start}
}

// next returns the trimmed line split on tabs. ok is false at end of stream.
// Undecodable UTF-8 sequences are dropped.
func (lr *lineReader) next() (fields []string, raw string, ok bool, err error) {
	line, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", false, err
	}
	if len(line) == 0 {
		return nil, "", false, nil
	}
	lr.offset += int64(len(line))
	lr.lineNo++

	raw = strings.TrimSpace(strings.ToValidUTF8(line, ""))
	if raw == "" {
		return nil, "", true, nil
	}
	return strings.Split(raw, "\t"), raw, true, nil
}
