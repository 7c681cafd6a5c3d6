package object

import (
	"bytes"
	"io"
	"net/url"
	"strings"
	"testing"
)

func TestNewKeyNamespacesByCaller(t *testing.T) {
	a, err := NewKey("user-1", "face.jpg")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	b, err := NewKey("user-1", "face.jpg")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	if a == b {
		t.Fatalf("expected unique keys, got %q twice", a)
	}
	if strings.Split(a, "/")[0] != strings.Split(b, "/")[0] {
		t.Fatalf("expected same caller namespace: %q vs %q", a, b)
	}
	if !strings.HasSuffix(a, "_face.jpg") {
		t.Fatalf("expected sanitized name suffix, got %q", a)
	}
}

func TestNewKeyRejectsTraversal(t *testing.T) {
	if _, err := NewKey("user-1", "../x.jpg"); err == nil {
		t.Fatalf("expected error for traversal name")
	}
}

func TestSniffReplaysStream(t *testing.T) {
	payload := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{1}, 1000)...)
	mimeType, r, err := Sniff(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if mimeType != "image/png" {
		t.Fatalf("expected image/png, got %q", mimeType)
	}
	counter := &CountingReader{R: r}
	got, err := io.ReadAll(counter)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) || counter.N != int64(len(payload)) {
		t.Fatalf("expected full payload replayed, got %d bytes", len(got))
	}
}

func TestEscapeKeyRoundTripsThroughURLParse(t *testing.T) {
	key := "abc123/9f_my selfie #1?.jpg"
	u, err := url.Parse("https://cdn.example.com/" + EscapeKey(key))
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	if u.Path != "/"+key {
		t.Fatalf("expected path %q, got %q", "/"+key, u.Path)
	}
	if u.Fragment != "" || u.RawQuery != "" {
		t.Fatalf("expected no fragment or query, got %q / %q", u.Fragment, u.RawQuery)
	}
}
