package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
)

// maxDocumentBytes bounds remote document size.
const maxDocumentBytes = 16 << 20

// fetchFunc reads the raw payload for a location.
type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// Loader implements pkgopenapi.Loader. Each source kind maps onto a fetch
// strategy; URL sources are only registered when an HTTP client is available.
type Loader struct {
	fetchers map[pkgopenapi.SourceKind]fetchFunc
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{fetchers: map[pkgopenapi.SourceKind]fetchFunc{
		pkgopenapi.SourceKindFile: readFile,
		pkgopenapi.SourceKindFS:   readFS(options.FileSystem),
	}}
	if client := httpClient(options); client != nil {
		l.fetchers[pkgopenapi.SourceKindURL] = fetchURL(client, options.RequestTimeout)
	}
	return l
}

// Load reads src and wraps the payload in a Document. Failures name the
// source location.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	fetch, ok := l.fetchers[src.Kind()]
	switch {
	case !ok && src.Kind() == pkgopenapi.SourceKindURL:
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", src.Location(), pkgopenapi.ErrRemoteDisabled)
	case !ok:
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}

	data, err := fetch(ctx, src.Location())
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s %s: %w", src.Kind(), src.Location(), err)
	}
	if len(data) == 0 {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s is empty", src.Location())
	}
	return pkgopenapi.NewDocument(src, data)
}

// Kinds reports which source kinds the loader accepts.
func (l *Loader) Kinds() []pkgopenapi.SourceKind {
	out := make([]pkgopenapi.SourceKind, 0, len(l.fetchers))
	for _, kind := range []pkgopenapi.SourceKind{pkgopenapi.SourceKindFile, pkgopenapi.SourceKindFS, pkgopenapi.SourceKindURL} {
		if _, ok := l.fetchers[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}

func readFile(_ context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	return os.ReadFile(filepath.Clean(path))
}

func readFS(files fs.FS) fetchFunc {
	return func(_ context.Context, name string) ([]byte, error) {
		if files == nil {
			return nil, errors.New("no filesystem configured")
		}
		return fs.ReadFile(files, name)
	}
}

func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	default:
		return nil
	}
}

func fetchURL(client *http.Client, timeout time.Duration) fetchFunc {
	return func(ctx context.Context, url string) ([]byte, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	}
}
