package repository

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileSource opens feeds from local disk. Relative paths are resolved
// against BaseDir.
type FileSource struct {
	BaseDir string
}

// Ensure FileSource implements FeedSource
var _ FeedSource = (*FileSource)(nil)

// Open opens a file:// reference or a bare path
func (s *FileSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	path := strings.TrimPrefix(ref, "file://")
	if !filepath.IsAbs(path) && s.BaseDir != "" {
		path = filepath.Join(s.BaseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file %s: %w", path, err)
	}
	return f, nil
}

// HTTPSource fetches feeds over http(s)
type HTTPSource struct {
	client *http.Client
}

// Ensure HTTPSource implements FeedSource
var _ FeedSource = (*HTTPSource)(nil)

// NewHTTPSource creates an HTTPSource with the given request timeout
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	return &HTTPSource{client: &http.Client{Timeout: timeout}}
}

// Open issues a GET request and returns the body on a 2xx response
func (s *HTTPSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", ref, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch feed %s: status %d", ref, resp.StatusCode)
	}
	return resp.Body, nil
}

// SourceRouter dispatches a reference to the source registered for its scheme.
// References without a scheme go to the "file" source.
type SourceRouter struct {
	sources map[string]FeedSource
}

// Ensure SourceRouter implements FeedSource
var _ FeedSource = (*SourceRouter)(nil)

// NewSourceRouter creates a router with a file source rooted at baseDir and
// an http(s) source
func NewSourceRouter(baseDir string) *SourceRouter {
	httpSource := NewHTTPSource(30 * time.Second)
	return &SourceRouter{
		sources: map[string]FeedSource{
			"file":  &FileSource{BaseDir: baseDir},
			"http":  httpSource,
			"https": httpSource,
		},
	}
}

// Register adds or replaces the source for a scheme (e.g. "s3", "drive")
func (r *SourceRouter) Register(scheme string, source FeedSource) {
	r.sources[strings.ToLower(scheme)] = source
}

// Open opens ref with the source registered for its scheme
func (r *SourceRouter) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	scheme := schemeOf(ref)
	source, ok := r.sources[scheme]
	if !ok {
		return nil, fmt.Errorf("no feed source registered for scheme %q (ref %s)", scheme, ref)
	}
	log.Printf("📡 SourceRouter.Open: scheme=%s ref=%s", scheme, ref)
	return source.Open(ctx, ref)
}

func schemeOf(ref string) string {
	i := strings.Index(ref, "://")
	if i <= 0 {
		return "file"
	}
	return strings.ToLower(ref[:i])
}
