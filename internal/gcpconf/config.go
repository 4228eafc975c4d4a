package gcpconf

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/containerd/errdefs"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/anewmanvs/gcpinfra/internal/gcpclient"
	"github.com/anewmanvs/gcpinfra/internal/naming"
)

const (
	// DefaultRegion is the region the default zone is picked from.
	DefaultRegion = "southamerica-east1"

	// FallbackZone is used when the region probe does not yield a zone.
	FallbackZone = "southamerica-east1-a"

	// CloudPlatformScope is the OAuth scope requested for the credentials and
	// bound to the instances gcpinfra creates.
	CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	// DefaultProbeTimeout bounds the region probe.
	DefaultProbeTimeout = 10 * time.Second
)

var (
	// ErrConfiguration is returned when the credentials file is missing or
	// cannot be loaded. Construction is aborted.
	ErrConfiguration = fmt.Errorf("configuration error: %w", errdefs.ErrFailedPrecondition)

	// ErrMalformedURI is returned when a zone URI does not have the
	// .../zones/<name> shape, which means the provider changed its contract.
	ErrMalformedURI = fmt.Errorf("malformed zone URI: %w", errdefs.ErrInternal)
)

// Config is the resolved provider configuration. All fields are set once
// during construction and must be treated as read-only afterwards.
type Config struct {
	// CredentialsPath is the credentials file the Config was built from.
	CredentialsPath string

	// ProjectID is the project the credentials belong to.
	ProjectID string

	// ServiceAccountEmail is bound to the instances created with this Config.
	// It is "default" when the credentials are not a service account key.
	ServiceAccountEmail string

	// Scopes are the OAuth scopes bound to created instances.
	Scopes []string

	// DefaultRegion is always DefaultRegion.
	DefaultRegion string

	// DefaultZoneURI is the fully qualified URI of the default zone.
	DefaultZoneURI string

	// DefaultZoneName is the bare name of the default zone.
	DefaultZoneName string

	credentials *google.Credentials
	httpClient  *http.Client
	endpoint    string
}

// Options control how a Config is constructed. They are only consulted by
// the call that actually constructs it.
type Options struct {
	// CredentialsPath overrides DefaultCredentialsPath().
	CredentialsPath string

	// Verbose promotes probe diagnostics from debug to info level.
	Verbose bool

	// ProbeTimeout bounds the region probe. Defaults to DefaultProbeTimeout.
	ProbeTimeout time.Duration

	// HTTPClient, when set, is used for compute calls instead of a client
	// authorized with the loaded credentials.
	HTTPClient *http.Client

	// Endpoint overrides the compute API base URL (scheme and host).
	Endpoint string
}

func (o Options) probeTimeout() time.Duration {
	if o.ProbeTimeout <= 0 {
		return DefaultProbeTimeout
	}
	return o.ProbeTimeout
}

// logf logs at info level when verbose and at debug level otherwise.
func (o Options) logf(ctx context.Context, msg string, args ...any) {
	level := slog.LevelDebug
	if o.Verbose {
		level = slog.LevelInfo
	}
	slog.Log(ctx, level, msg, append([]any{"component", "gcpconf"}, args...)...)
}

// Provider lazily constructs a single Config and shares it with every caller.
// The zero value is ready to use. A Provider must not be copied after first use.
type Provider struct {
	mu   sync.Mutex
	conf *Config
}

// GetOrCreate returns the Provider's Config, constructing it on the first
// successful call. Concurrent callers block until the construction in flight
// finishes and then observe the same Config. Options passed after the Config
// exists are ignored.
//
// The result is shared, so construction ignores cancellation of ctx. The
// region probe is bounded by Options.ProbeTimeout instead.
func (p *Provider) GetOrCreate(ctx context.Context, opts Options) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conf != nil {
		opts.logf(ctx, "Using existing provider configuration.", "path", p.conf.CredentialsPath)
		if opts.CredentialsPath != "" && opts.CredentialsPath != p.conf.CredentialsPath {
			slog.Debug("Ignoring credentials path, configuration already initialized.",
				"component", "gcpconf", "requested", opts.CredentialsPath, "path", p.conf.CredentialsPath)
		}
		return p.conf, nil
	}

	opts.logf(ctx, "Creating provider configuration.", "path", opts.CredentialsPath)
	conf, err := newConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	p.conf = conf
	return conf, nil
}

var defaultProvider Provider

// GetOrCreate returns the process-wide Config. See Provider.GetOrCreate.
func GetOrCreate(ctx context.Context, opts Options) (*Config, error) {
	return defaultProvider.GetOrCreate(ctx, opts)
}

// newConfig performs the construction steps in order: resolve and register
// the credentials file, load credentials and project, then probe for the
// default zone.
func newConfig(ctx context.Context, opts Options) (*Config, error) {
	ctx = context.WithoutCancel(ctx)

	path := opts.CredentialsPath
	if path == "" {
		path = DefaultCredentialsPath()
	}

	creds, err := loadCredentials(ctx, path)
	if err != nil {
		return nil, err
	}

	conf := &Config{
		CredentialsPath:     path,
		ProjectID:           creds.ProjectID,
		ServiceAccountEmail: serviceAccountEmail(creds),
		Scopes:              []string{CloudPlatformScope},
		DefaultRegion:       DefaultRegion,
		credentials:         creds,
		httpClient:          opts.HTTPClient,
		endpoint:            opts.Endpoint,
	}

	var zoneURI string
	svc, err := conf.ComputeService(ctx)
	if err != nil {
		opts.logf(ctx, "Failed to retrieve region information.", "region", conf.DefaultRegion, "error", err)
	} else {
		zoneURI = probeDefaultZone(ctx, svc, conf.ProjectID, conf.DefaultRegion, opts)
	}

	zoneName, err := ZoneNameFromURI(zoneURI)
	if err != nil {
		return nil, err
	}
	if zoneName == "" {
		zoneName = FallbackZone
		zoneURI = naming.ZoneURI(conf.ProjectID, FallbackZone)
	}
	conf.DefaultZoneName = zoneName
	conf.DefaultZoneURI = zoneURI

	opts.logf(ctx, "Provider configuration ready.",
		"project", conf.ProjectID, "region", conf.DefaultRegion, "zone", conf.DefaultZoneName)
	return conf, nil
}

// ComputeService returns a compute client authorized with the Config's
// credentials.
func (c *Config) ComputeService(ctx context.Context) (*gcpclient.ComputeService, error) {
	client := c.httpClient
	if client == nil {
		if c.credentials == nil {
			return nil, fmt.Errorf("%w: no credentials loaded", ErrConfiguration)
		}
		client = oauth2.NewClient(ctx, c.credentials.TokenSource)
	}
	if c.endpoint != "" {
		return gcpclient.NewComputeServiceForURL(ctx, client, c.endpoint)
	}
	return gcpclient.NewComputeService(ctx, client)
}
