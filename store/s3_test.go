package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binfs/binfs/config"
)

// fakeS3 serves one object with path-style addressing.
type fakeS3 struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if r.URL.Path != "/docs/tree.json" {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
		return
	}
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"__binfs__":"binfs","readme":"hello"}`))
	case http.MethodPut:
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}
}

func newTestS3(t *testing.T, srv *httptest.Server, key string) *S3 {
	t.Helper()
	s, err := NewS3(context.Background(), config.S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "docs",
		Key:       key,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return s
}

func TestS3_FetchAndPush(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s := newTestS3(t, srv, "tree.json")
	assert.Equal(t, "s3://docs/tree.json", s.Name())

	doc, err := Load(context.Background(), s)
	require.NoError(t, err)
	got, err := doc.Root.ReadFile("readme")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	require.NoError(t, Save(context.Background(), s, doc))
	assert.Equal(t, []string{"GET /docs/tree.json", "PUT /docs/tree.json"}, fake.calls)
}

func TestS3_MissingObject(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{})
	defer srv.Close()

	_, err := newTestS3(t, srv, "other.json").Fetch(context.Background())
	assert.Error(t, err)
}
