package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// RESTClient talks JSON over HTTP to a drive-like service. Authentication
// uses an auto-refreshing OAuth2 token source.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

// NewRESTClient creates a client for the service at baseURL. ts may be nil
// for unauthenticated services.
func NewRESTClient(baseURL string, ts oauth2.TokenSource) *RESTClient {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if ts != nil {
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = 30 * time.Second
	}
	return &RESTClient{baseURL: baseURL, client: httpClient}
}

// do issues a request and decodes the JSON response into out (when non-nil).
// 404 maps to ErrNotFound.
func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *RESTClient) List(ctx context.Context) ([]FileRef, error) {
	var refs []FileRef
	if err := c.do(ctx, http.MethodGet, "/files", nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (c *RESTClient) Get(ctx context.Context, fileID string) (*deck.Project, error) {
	var p deck.Project
	if err := c.do(ctx, http.MethodGet, "/files/"+url.PathEscape(fileID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RESTClient) GetMetadata(ctx context.Context, fileID string) (*FileRef, error) {
	var ref FileRef
	if err := c.do(ctx, http.MethodGet, "/files/"+url.PathEscape(fileID)+"/metadata", nil, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *RESTClient) Create(ctx context.Context, p *deck.Project) (*FileRef, error) {
	var ref FileRef
	if err := c.do(ctx, http.MethodPost, "/files", p, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *RESTClient) Update(ctx context.Context, fileID string, p *deck.Project) (*FileRef, error) {
	var ref FileRef
	if err := c.do(ctx, http.MethodPut, "/files/"+url.PathEscape(fileID), p, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *RESTClient) Delete(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/files/"+url.PathEscape(fileID), nil, nil)
}

func (c *RESTClient) Trash(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodPost, "/files/"+url.PathEscape(fileID)+"/trash", nil, nil)
}

func (c *RESTClient) FindByName(ctx context.Context, name string) (*FileRef, error) {
	query := url.Values{"name": {SanitizeName(name)}}
	var refs []FileRef
	if err := c.do(ctx, http.MethodGet, "/files?"+query.Encode(), nil, &refs); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}
	ref := refs[0]
	return &ref, nil
}
