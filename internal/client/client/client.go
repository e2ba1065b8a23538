package client

import (
	"context"
	"net/url"
)

type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body []byte, out any) error
	Put(ctx context.Context, path string, body []byte, out any) error
	Delete(ctx context.Context, path string) error
}
