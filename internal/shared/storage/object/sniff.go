package object

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Sniff reads up to 512 bytes to detect the content type and returns a reader
// replaying the full stream.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	mimeType := http.DetectContentType(head[:n])
	return mimeType, io.MultiReader(bytes.NewReader(head[:n]), r), nil
}

// CountingReader counts the bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
