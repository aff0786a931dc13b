package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
)

func TestLoaderKinds(t *testing.T) {
	offline := New(pkgopenapi.NewLoaderOptions())
	if diff := cmp.Diff([]pkgopenapi.SourceKind{pkgopenapi.SourceKindFile, pkgopenapi.SourceKindFS}, offline.Kinds()); diff != "" {
		t.Fatalf("offline kinds mismatch (-want +got):\n%s", diff)
	}
	online := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(http.DefaultClient)))
	if got := len(online.Kinds()); got != 3 {
		t.Fatalf("expected url support, got %v", online.Kinds())
	}
}

func TestLoaderRemoteDisabled(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	_, err := l.Load(context.Background(), pkgopenapi.SourceFromURL("https://example.com/api.yaml"))
	if !errors.Is(err, pkgopenapi.ErrRemoteDisabled) {
		t.Fatalf("expected ErrRemoteDisabled, got %v", err)
	}
}

func TestLoaderHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.yaml" {
			_, _ = w.Write([]byte("openapi: 3.0.3\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/ok.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := string(doc.Raw()); got != "openapi: 3.0.3\n" {
		t.Fatalf("unexpected payload %q", got)
	}

	_, err = l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoaderFSAndEmpty(t *testing.T) {
	files := fstest.MapFS{
		"api.yaml":   {Data: []byte("openapi: 3.0.3\n")},
		"empty.yaml": {Data: nil},
	}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("api.yaml")); err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("empty.yaml"))
	if err == nil || !strings.Contains(err.Error(), "empty.yaml is empty") {
		t.Fatalf("expected empty document error, got %v", err)
	}
	_, err = l.Load(context.Background(), pkgopenapi.SourceFromFS("nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "fs nope.yaml") {
		t.Fatalf("expected location in error, got %v", err)
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFile("api.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
