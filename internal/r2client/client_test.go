package r2client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeBucket is a minimal path-style S3 endpoint.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Path-style: /bucket/key
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	if len(parts) != 2 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	key := parts[1]

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[key] = data
		w.Header().Set("ETag", `"etag-`+key+`"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		data, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			}
			return
		}
		w.Header().Set("ETag", `"etag-`+key+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: make(map[string][]byte)}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{
		Endpoint:    srv.URL,
		AccessKeyID: "test-access",
		SecretKey:   "test-secret",
		BucketName:  "test-bucket",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, bucket
}

func TestNew_RequiresAllFields(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), Config{Endpoint: "https://x", AccessKeyID: "a"})
	if err == nil {
		t.Fatal("expected error for incomplete config")
	}
}

func TestUploadDownload(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	ctx := context.Background()

	etag, err := c.Upload(ctx, "analytics/2026-01-01/a.json", []byte(`{"q":"x"}`), "application/json")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if etag != "etag-analytics/2026-01-01/a.json" {
		t.Errorf("etag = %q", etag)
	}

	data, etag, err := c.Download(ctx, "analytics/2026-01-01/a.json")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(data) != `{"q":"x"}` {
		t.Errorf("data = %q", data)
	}
	if etag == "" {
		t.Error("expected etag")
	}

	head, err := c.HeadObject(ctx, "analytics/2026-01-01/a.json")
	if err != nil {
		t.Fatalf("HeadObject() error = %v", err)
	}
	if head != etag {
		t.Errorf("HeadObject() = %q, want %q", head, etag)
	}
}

func TestDownload_DecompressesZstd(t *testing.T) {
	t.Parallel()
	c, bucket := newTestClient(t)

	doc := strings.Repeat("## Assessments\nThe essay is due Friday.\n", 50)
	compressed, err := Compress([]byte(doc))
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	bucket.objects["syllabus.md.zst"] = compressed

	data, _, err := c.Download(context.Background(), "syllabus.md.zst")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(data) != doc {
		t.Errorf("decompressed %d bytes, want %d", len(data), len(doc))
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	ctx := context.Background()

	if _, _, err := c.Download(ctx, "missing.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Download() error = %v, want ErrNotFound", err)
	}
	if _, err := c.HeadObject(ctx, "missing.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("HeadObject() error = %v, want ErrNotFound", err)
	}
}

func TestCompressDecompress(t *testing.T) {
	t.Parallel()
	data := bytes.Repeat([]byte("Late submissions lose 10% per day. "), 1000)

	compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(compressed) >= len(data) {
		t.Errorf("compressed size %d >= original %d", len(compressed), len(data))
	}

	got, err := Decompress(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
}

func TestDecompress_InvalidData(t *testing.T) {
	t.Parallel()
	if _, err := Decompress(strings.NewReader("not zstd")); err == nil {
		t.Error("expected error for invalid data")
	}
}
