package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/dmitrijs2005/happiestbaby/internal/netx"
)

// Sender is satisfied by *dispatch.Dispatcher.
type Sender interface {
	Send(ctx context.Context, req *netx.Request) (*netx.Response, error)
}

// APIClient implements Client by sending through a Sender.
type APIClient struct {
	sender  Sender
	baseURL string
}

func NewAPIClient(sender Sender, baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = common.BaseEndpoint
	}
	return &APIClient{sender: sender, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *APIClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *APIClient) Post(ctx context.Context, path string, body []byte, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *APIClient) Put(ctx context.Context, path string, body []byte, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *APIClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	req := &netx.Request{
		Method: method,
		URL:    c.baseURL + path,
		Query:  query,
		Body:   body,
	}

	resp, err := c.sender.Send(ctx, req)
	if err != nil {
		return err
	}
	return decode(req, resp.Body, out)
}

// decode leaves out untouched for an empty or null body.
func decode(req *netx.Request, body []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrUnexpectedResponse, req.Method, req.URL, err)
	}
	return nil
}
