package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// Source opens raw resources by path relative to a data root.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// String describes the source for logs.
	String() string
}

// fsSource reads resources from an fs.FS.
type fsSource struct {
	fsys fs.FS
	name string
}

// FSSource returns a Source backed by fsys. name is only used in logs.
func FSSource(fsys fs.FS, name string) Source {
	return &fsSource{fsys: fsys, name: name}
}

// DirSource returns a Source reading files under dir.
func DirSource(dir string) Source {
	return &fsSource{fsys: os.DirFS(dir), name: dir}
}

func (s *fsSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fsys.Open(path.Clean(name))
}

func (s *fsSource) String() string {
	return "fs:" + s.name
}

// httpSource fetches resources relative to a base URL.
type httpSource struct {
	base   *url.URL
	client *http.Client
}

// HTTPSource returns a Source that GETs resources relative to baseURL.
// A nil client means http.DefaultClient, which has no timeout.
func HTTPSource(baseURL string, client *http.Client) (Source, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid data url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid data url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpSource{base: u, client: client}, nil
}

func (s *httpSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(name, "/")})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: target.String()}
	}
	return resp.Body, nil
}

func (s *httpSource) String() string {
	return s.base.String()
}
