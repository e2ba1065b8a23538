// Package dispatch sends authenticated requests to the service. It attaches
// the current credentials, refreshes them when they are about to expire or
// are rejected, and retries transient failures with exponential backoff.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
	"github.com/dmitrijs2005/happiestbaby/internal/netx"
	"github.com/google/uuid"
)

const (
	DefaultMaxAttempts    = 3
	DefaultRequestTimeout = 30 * time.Second
	DefaultRefreshSkew    = 60 * time.Second
)

// Request outcomes recorded in metrics.
const (
	outcomeSuccess      = "success"
	outcomeRequestError = "request_error"
	outcomeAuthError    = "auth_error"
	outcomeCanceled     = "canceled"
)

// TokenSource is the read side of the token store.
type TokenSource interface {
	Get() (models.CredentialSet, bool)
	IsExpired(skew time.Duration) bool
}

// Refresher obtains new credentials after stale was rejected or expired.
type Refresher interface {
	Refresh(ctx context.Context, stale string) (models.CredentialSet, error)
}

type Options struct {
	// MaxAttempts is the number of transport attempts for transient
	// failures. The single resend after a token refresh is not counted.
	MaxAttempts    int
	RequestTimeout time.Duration
	RefreshSkew    time.Duration
}

type Dispatcher struct {
	transport netx.Transport
	tokens    TokenSource
	refresher Refresher
	opts      Options
	log       logging.Logger
	metrics   *Metrics

	newBackOff func() backoff.BackOff
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewDispatcher(transport netx.Transport, tokens TokenSource, refresher Refresher, opts Options, log logging.Logger, metrics *Metrics) *Dispatcher {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.RefreshSkew < 0 {
		opts.RefreshSkew = 0
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Dispatcher{
		transport:  transport,
		tokens:     tokens,
		refresher:  refresher,
		opts:       opts,
		log:        log,
		metrics:    metrics,
		newBackOff: NewBackOff,
		sleep:      sleepContext,
	}
}

// NewBackOff returns the retry schedule: 2s, 4s, then 5s for every further
// wait, without jitter.
func NewBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Second
	b.RandomizationFactor = 0
	b.Reset()
	return b
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Send executes req with the session credentials. The returned response
// always has a 2xx or 3xx status; anything else is an error.
func (d *Dispatcher) Send(ctx context.Context, req *netx.Request) (*netx.Response, error) {
	resp, err := d.send(ctx, req)
	d.metrics.observeRequest(req.Method, outcome(err))
	return resp, err
}

func (d *Dispatcher) send(ctx context.Context, req *netx.Request) (*netx.Response, error) {
	creds, ok := d.tokens.Get()
	if !ok {
		return nil, fmt.Errorf("%w: not logged in", common.ErrAuthentication)
	}
	if d.tokens.IsExpired(d.opts.RefreshSkew) {
		d.metrics.observeRefresh("expiring")
		var err error
		if creds, err = d.refresher.Refresh(ctx, creds.IDToken); err != nil {
			return nil, err
		}
	}

	log := d.log.With("method", req.Method, "url", req.URL)
	requestID := uuid.NewString()
	bo := d.newBackOff()
	refreshed := false

	for attempt := 1; ; {
		resp, err := d.attempt(ctx, req, creds, requestID)

		var failure error
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failure = &common.RequestError{Method: req.Method, URL: req.URL, Err: err}

		case isAuthFailure(resp):
			if refreshed {
				log.Warn(ctx, "credentials rejected after refresh", "status", resp.StatusCode)
				return nil, fmt.Errorf("%w: %s %s: status %d after token refresh",
					common.ErrAuthentication, req.Method, req.URL, resp.StatusCode)
			}
			refreshed = true
			log.Debug(ctx, "credentials rejected, refreshing", "status", resp.StatusCode)
			d.metrics.observeRefresh("rejected")
			if creds, err = d.refresher.Refresh(ctx, creds.IDToken); err != nil {
				return nil, err
			}
			continue

		case resp.StatusCode >= http.StatusInternalServerError:
			failure = responseError(req, resp)

		case resp.StatusCode >= http.StatusBadRequest:
			return nil, responseError(req, resp)

		default:
			return resp, nil
		}

		if attempt >= d.opts.MaxAttempts {
			log.Warn(ctx, "giving up", "attempts", attempt, "error", failure)
			return nil, failure
		}

		wait := bo.NextBackOff()
		log.Debug(ctx, "retrying", "attempt", attempt, "wait", wait, "error", failure)
		d.metrics.observeRetry()
		if err := d.sleep(ctx, wait); err != nil {
			return nil, err
		}
		attempt++
	}
}

func (d *Dispatcher) attempt(ctx context.Context, req *netx.Request, creds models.CredentialSet, requestID string) (*netx.Response, error) {
	r := req.Clone()
	r.Header.Set(common.AuthorizationHeaderName, creds.Authorization())
	r.Header.Set(common.RequestIDHeaderName, requestID)

	actx, cancel := context.WithTimeout(ctx, d.opts.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := d.transport.Do(actx, r)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	d.metrics.observeAttempt(time.Since(start), status)
	return resp, err
}

var (
	expiredMarker = []byte("expired")
	tokenMarker   = []byte("token")
)

// isAuthFailure reports a response the service sends for missing, expired
// or invalid credentials: 401, or 403 naming the token.
func isAuthFailure(resp *netx.Response) bool {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		body := bytes.ToLower(resp.Body)
		return bytes.Contains(body, expiredMarker) || bytes.Contains(body, tokenMarker)
	}
	return false
}

func responseError(req *netx.Request, resp *netx.Response) *common.RequestError {
	return &common.RequestError{
		Method:     req.Method,
		URL:        req.URL,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}
}

func outcome(err error) string {
	var re *common.RequestError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &re):
		return outcomeRequestError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case errors.Is(err, common.ErrAuthentication), errors.Is(err, common.ErrInvalidCredentials):
		return outcomeAuthError
	default:
		return outcomeRequestError
	}
}
