package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestUploadWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost:8080/")

	payload := []byte("\xff\xd8\xff\xe0 fake jpeg body")
	obj, err := store.Upload(context.Background(), "guest:abc", "face.jpg", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj.SizeBytes != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), obj.SizeBytes)
	}
	if obj.MimeType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", obj.MimeType)
	}
	wantPrefix := "http://localhost:8080/media/"
	if !strings.HasPrefix(obj.URL, wantPrefix) || !strings.HasSuffix(obj.URL, obj.Key) {
		t.Fatalf("unexpected url %q for key %q", obj.URL, obj.Key)
	}

	got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("stored bytes differ")
	}
}

func TestUploadHonorsCanceledContext(t *testing.T) {
	store := New(t.TempDir(), "http://localhost")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Upload(ctx, "u", "face.jpg", bytes.NewReader([]byte("x"))); err == nil {
		t.Fatalf("expected canceled context error")
	}
}

func TestUploadURLEscapesFileName(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost:8080")

	obj, err := store.Upload(context.Background(), "u1", "my selfie #1.jpg", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	u, err := url.Parse(obj.URL)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", obj.URL, err)
	}
	if u.Fragment != "" {
		t.Fatalf("file name leaked into fragment: %q", obj.URL)
	}
	if u.Path != MediaPath+"/"+obj.Key {
		t.Fatalf("expected path %q, got %q", MediaPath+"/"+obj.Key, u.Path)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(u.Path, MediaPath+"/")))); err != nil {
		t.Fatalf("decoded url path does not resolve to stored file: %v", err)
	}
}

func TestUploadRemovesPartialFileOnWriteError(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost")
	readErr := errors.New("client went away")
	body := io.MultiReader(bytes.NewReader(bytes.Repeat([]byte{0xff}, 1024)), iotest.ErrReader(readErr))

	if _, err := store.Upload(context.Background(), "u1", "face.jpg", body); !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			t.Errorf("partial file left behind: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}
