package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/sakina/internal/storage"
)

// Fetcher retrieves a response from the network. An error means the origin
// could not be reached; HTTP error statuses come back as responses.
type Fetcher interface {
	Fetch(ctx context.Context, r *http.Request) (*storage.Response, error)
}

// HTTPOrigin proxies to a remote web client deployment.
type HTTPOrigin struct {
	base   string
	client *http.Client
}

func NewHTTPOrigin(base string, timeout time.Duration) *HTTPOrigin {
	return &HTTPOrigin{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (o *HTTPOrigin) Fetch(ctx context.Context, r *http.Request) (*storage.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, o.base+r.URL.RequestURI(), nil)
	if err != nil {
		return nil, err
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &storage.Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

// DirOrigin serves a built web client from a local directory.
type DirOrigin struct {
	root string
}

func NewDirOrigin(root string) *DirOrigin {
	return &DirOrigin{root: root}
}

func (o *DirOrigin) Fetch(_ context.Context, r *http.Request) (*storage.Response, error) {
	name := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	body, err := os.ReadFile(filepath.Join(o.root, filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) {
		return &storage.Response{
			Status: http.StatusNotFound,
			Header: http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
			Body:   []byte("not found"),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	return &storage.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": []string{ct}},
		Body:   body,
	}, nil
}
