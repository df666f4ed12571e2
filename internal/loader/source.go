package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/Zachkp/portfolio/internal/portfolio"
)

// Source returns the raw bytes of a named data document.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads documents from a file system laid out like the site root,
// i.e. containing data/<name>.json.
type DirSource struct {
	FS fs.FS
}

func (s DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	path := portfolio.Path(name)
	b, err := fs.ReadFile(s.FS, path)
	if err != nil {
		return nil, &Error{Document: name, Reason: ReasonNetwork, Message: "failed to read " + path, Cause: err}
	}
	return b, nil
}

// HTTPSource fetches documents relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := resolve(s.BaseURL, portfolio.Path(name))
	if err != nil {
		return nil, &Error{Document: name, Reason: ReasonNetwork, Message: "invalid URL", Cause: err}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Error{Document: name, Reason: ReasonNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Document: name, Reason: ReasonNetwork, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Document: name, Reason: ReasonStatus, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Document: name, Reason: ReasonNetwork, Message: "failed to read response body", Cause: err}
	}
	return body, nil
}

func resolve(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL %q must be absolute", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.ResolveReference(&url.URL{Path: path}).String(), nil
}
