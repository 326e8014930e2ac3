package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
	clog "github.com/charmbracelet/log"

	"github.com/kickstart-dev/kickstart/internal/logging"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org"

// ErrPackageNotFound is returned when the registry answers 404.
var ErrPackageNotFound = errors.New("package not found")

// Client fetches package metadata from a registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *clog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL points the client at another registry or mirror.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		if u != "" {
			cl.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger replaces the package-level logger.
func WithLogger(l *clog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client for the public registry unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultRegistry,
		httpClient: http.DefaultClient,
		userAgent:  "kickstart",
		logger:     logging.L,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// packument is the subset of GET /<name>/latest we read.
type packument struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Latest returns the version the "latest" dist-tag points to.
func (c *Client) Latest(ctx context.Context, name string) (*semver.Version, error) {
	endpoint := fmt.Sprintf("%s/%s/latest", c.baseURL, escapeName(name))
	c.logger.Debug("fetching latest version", "package", name, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for %s: %w", name, err)
	}

	var p packument
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parsing metadata for %s: %w", name, err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("registry returned no version for %s", name)
	}

	v, err := semver.StrictNewVersion(p.Version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q of %s: %w", p.Version, name, err)
	}
	c.logger.Debug("resolved", "package", name, "version", v.String())
	return v, nil
}

// Resolver finds the latest published version of a package. *Client
// implements it.
type Resolver interface {
	Latest(ctx context.Context, name string) (*semver.Version, error)
}

// ResolveAll looks up every package in order with r and returns name ->
// version. Repeated names are looked up once; the first failure aborts.
func ResolveAll(ctx context.Context, r Resolver, names []string) (map[string]*semver.Version, error) {
	versions := make(map[string]*semver.Version, len(names))
	for _, name := range names {
		if _, ok := versions[name]; ok {
			continue
		}
		v, err := r.Latest(ctx, name)
		if err != nil {
			return nil, err
		}
		versions[name] = v
	}
	return versions, nil
}

// escapeName encodes the slash of a scoped name ("@nuxt/ui" ->
// "@nuxt%2Fui") the way the npm CLI does.
func escapeName(name string) string {
	if strings.HasPrefix(name, "@") {
		if scope, pkg, ok := strings.Cut(name, "/"); ok {
			return scope + "%2F" + url.PathEscape(pkg)
		}
	}
	return url.PathEscape(name)
}
