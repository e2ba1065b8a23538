// Package happiestbaby is a client for the Happiest Baby cloud service: the
// SNOO smart sleeper and the baby journal.
//
// A Client is created with New (or Login, which also signs in and loads the
// device snapshot). All methods are safe for concurrent use:
//
//	c, err := happiestbaby.Login(ctx, happiestbaby.DefaultConfig(), "parent@example.com", "secret")
//	if err != nil {
//		return err
//	}
//	entry, err := c.CreateWeightEntry(ctx, happiestbaby.WeightInput{
//		Meta:     happiestbaby.Meta{BabyID: babyID, StartTime: time.Now()},
//		Imperial: ptr(10.5),
//	})
package happiestbaby

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/happiestbaby/internal/client/auth"
	"github.com/dmitrijs2005/happiestbaby/internal/client/client"
	"github.com/dmitrijs2005/happiestbaby/internal/client/config"
	"github.com/dmitrijs2005/happiestbaby/internal/client/dispatch"
	"github.com/dmitrijs2005/happiestbaby/internal/client/services"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
	"github.com/dmitrijs2005/happiestbaby/internal/netx"
	"github.com/prometheus/client_golang/prometheus"
)

// Client is a Happiest Baby session. Every operation of services.Session is
// available on it.
type Client struct {
	*services.Session
	authn *auth.Authenticator
}

type options struct {
	log        logging.Logger
	httpClient *http.Client
	registerer prometheus.Registerer
	provider   IdentityProvider
}

// Option customizes New.
type Option func(*options)

// WithLogger sets the logger. The default writes text records to stderr at
// the configured level.
func WithLogger(l Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRegisterer registers the request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithIdentityProvider replaces the Cognito identity provider.
func WithIdentityProvider(p IdentityProvider) Option {
	return func(o *options) { o.provider = p }
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	var c Config
	c.LoadDefaults()
	return c
}

// LoadConfig reads settings from a JSON file, SNOO_* environment variables
// and flags in args, on top of DefaultConfig.
func LoadConfig(args []string) (Config, error) {
	c, err := config.LoadConfig(args)
	if err != nil {
		return Config{}, err
	}
	return *c, nil
}

// New assembles a client without contacting the service. Credentials from
// cfg are installed but not used until Authenticate.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	}

	provider := o.provider
	if provider == nil {
		p, err := auth.NewCognitoProvider(ctx, auth.CognitoConfig{
			Region:          cfg.CognitoRegion,
			ClientID:        cfg.CognitoClientID,
			Endpoint:        cfg.CognitoEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("identity provider: %w", err)
		}
		provider = p
	}

	store := auth.NewTokenStore()
	authn := auth.NewAuthenticator(provider, store, o.log.With("component", "auth"), cfg.RequestTimeout)
	if cfg.Username != "" {
		authn.SetCredentials(cfg.Username, cfg.Password)
	}

	transport := netx.NewHTTPTransport(o.httpClient)

	var metrics *dispatch.Metrics
	if o.registerer != nil {
		metrics = dispatch.NewMetrics(o.registerer)
	}

	dispatcher := dispatch.NewDispatcher(transport, store, authn, dispatch.Options{
		MaxAttempts:    cfg.MaxAttempts,
		RequestTimeout: cfg.RequestTimeout,
		RefreshSkew:    cfg.RefreshSkew,
	}, o.log.With("component", "dispatch"), metrics)

	api := client.NewAPIClient(dispatcher, cfg.BaseEndpoint)
	session := services.NewSession(authn, api, services.Options{
		DeviceUpdateInterval: cfg.DeviceUpdateInterval,
	}, o.log.With("component", "session"))

	return &Client{Session: session, authn: authn}, nil
}

// Login creates a client, signs in with username and password and loads the
// initial device snapshot.
func Login(ctx context.Context, cfg Config, username, password string, opts ...Option) (*Client, error) {
	c, err := New(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Session.Login(ctx, username, password); err != nil {
		return nil, err
	}
	if err := c.UpdateDeviceInfo(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Identity returns the subject and email claims of the current ID token.
func (c *Client) Identity() (sub, email string) {
	return c.authn.Identity()
}
