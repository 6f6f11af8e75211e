package influxdb

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/asphalt-framework/asphalt-influxdb/v1/observability"
	"golang.org/x/sync/semaphore"
)

// Client lifecycle states. Transitions are linear and irreversible:
// Uninitialized -> Started -> Closed.
type clientState int

const (
	stateUninitialized clientState = iota
	stateStarted
	stateClosed
)

// InfluxDBClient is a client for the InfluxDB HTTP API.
// It owns a pooled HTTP session shared by all concurrent operations,
// performs per-request authentication, and retries idempotent requests
// once on transient network failures.
//
// InfluxDBClient implements the Client interface.
type InfluxDBClient struct {
	// cfg stores the configuration for this client; it is never mutated
	cfg Config

	// httpClient is the shared pooled HTTP session
	httpClient *http.Client

	// slots caps the number of concurrent in-flight requests
	slots *semaphore.Weighted

	// baseURLs holds the server addresses in preference order; the most
	// recently successful address is kept at the front
	baseURLs []string

	// urlMu protects baseURLs
	urlMu sync.Mutex

	// state is the lifecycle state, guarded by stateMu
	state   clientState
	stateMu sync.RWMutex

	// logger is used for structured logging
	logger Logger

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// shutdownSignal is closed when the client is being shut down
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once
}

// NewClient creates a new InfluxDB client with the provided configuration.
// The returned client is in the Uninitialized state; call Start before
// performing any operation and Close exactly once during shutdown.
//
// Example:
//
//	client, err := influxdb.NewClient(influxdb.Config{
//		Host:     "localhost",
//		Port:     8086,
//		Database: "metrics",
//	})
//	if err != nil {
//		return err
//	}
//	if err := client.Start(ctx); err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config) (*InfluxDBClient, error) {
	// Apply defaults
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxConnections == 0 {
		cfg.MaxConnections = DefaultMaxConnections
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}

	// Set up TLS config if enabled
	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS, cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	baseURLs, err := resolveBaseURLs(cfg)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		MaxIdleConns:        cfg.MaxConnections,
		MaxIdleConnsPerHost: cfg.MaxConnections,
		MaxConnsPerHost:     cfg.MaxConnections,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &InfluxDBClient{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		slots:          semaphore.NewWeighted(int64(cfg.MaxConnections)),
		baseURLs:       baseURLs,
		state:          stateUninitialized,
		logger:         cfg.Logger,
		shutdownSignal: make(chan struct{}),
	}

	return c, nil
}

// resolveBaseURLs normalizes the configured server addresses.
func resolveBaseURLs(cfg Config) ([]string, error) {
	if len(cfg.Addresses) > 0 {
		urls := make([]string, len(cfg.Addresses))
		for i, addr := range cfg.Addresses {
			parsed, err := url.Parse(addr)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return nil, fmt.Errorf("invalid server address %q", addr)
			}
			urls[i] = strings.TrimRight(addr, "/")
		}
		return urls, nil
	}

	scheme := "http"
	if cfg.TLS.Enabled {
		scheme = "https"
	}
	return []string{fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port)}, nil
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig, defaultServerName string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	// Set server name for TLS verification
	if cfg.ServerName != "" {
		tlsConfig.ServerName = cfg.ServerName
	} else if defaultServerName != "" {
		tlsConfig.ServerName = defaultServerName
	}

	// Load CA certificate
	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	// Load client certificate
	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Start transitions the client from Uninitialized to Started.
// Only a started client may perform operations. Starting twice or
// starting a closed client is an error.
func (c *InfluxDBClient) Start(ctx context.Context) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	switch c.state {
	case stateStarted:
		return ErrAlreadyStarted
	case stateClosed:
		return ErrClientClosed
	}

	c.state = stateStarted
	if c.logger != nil {
		c.logger.Info("InfluxDB client started", nil)
	}
	return nil
}

// Close transitions the client to Closed and releases all pooled
// connections. Close is idempotent; every operation after the first
// Close fails with ErrClientClosed. In-flight operations racing a Close
// either complete normally or fail with a connection error.
func (c *InfluxDBClient) Close() error {
	c.closeShutdownOnce.Do(func() {
		close(c.shutdownSignal)
	})

	c.stateMu.Lock()
	alreadyClosed := c.state == stateClosed
	c.state = stateClosed
	c.stateMu.Unlock()

	if alreadyClosed {
		return nil
	}

	if c.logger != nil {
		c.logger.Info("Closing InfluxDB client", nil)
	}
	c.httpClient.CloseIdleConnections()
	return nil
}

// checkStarted returns the error for the current lifecycle state, or
// nil when operations are allowed.
func (c *InfluxDBClient) checkStarted() error {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	switch c.state {
	case stateUninitialized:
		return ErrNotStarted
	case stateClosed:
		return ErrClientClosed
	default:
		return nil
	}
}

// WithObserver sets the observer for this client and returns the client
// for method chaining. The observer receives one event per operation.
func (c *InfluxDBClient) WithObserver(observer observability.Observer) *InfluxDBClient {
	c.observer = observer
	return c
}

// WithLogger sets the logger for this client and returns the client for
// method chaining.
func (c *InfluxDBClient) WithLogger(logger Logger) *InfluxDBClient {
	c.logger = logger
	return c
}

// response is a fully buffered HTTP response. Buffering lets the
// connection slot be released before the caller decodes the payload.
type response struct {
	status int
	header http.Header
	body   []byte
}

// newBodyReader returns a reader over the buffered response body.
func newBodyReader(r *response) io.Reader {
	return bytes.NewReader(r.body)
}

// do performs one request against the server, holding a connection slot
// for the duration. Transient connection failures rotate through the
// configured addresses; when the request is idempotent the whole
// rotation is retried once more after RetryDelay before giving up.
func (c *InfluxDBClient) do(ctx context.Context, op, method, path string,
	params url.Values, body []byte, idempotent bool) (*response, error) {

	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	if err := c.slots.Acquire(ctx, 1); err != nil {
		return nil, &ConnectionError{Op: op, Err: err}
	}
	defer c.slots.Release(1)

	attempts := 1
	if idempotent {
		attempts = 2
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
				return nil, &ConnectionError{Op: op, Err: ctx.Err()}
			case <-c.shutdownSignal:
				return nil, ErrClientClosed
			}
		}

		resp, err := c.tryServers(ctx, method, path, params, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Caller cancellation and logical failures are never retried.
		if ctx.Err() != nil || !isTransient(err) {
			break
		}

		if c.logger != nil && attempt < attempts-1 {
			c.logger.Warn("transient error, retrying request", err, map[string]interface{}{
				"operation": op,
			})
		}
	}

	return nil, &ConnectionError{Op: op, Err: lastErr}
}

// tryServers attempts the request against each configured address in
// preference order, promoting the first address that accepts a
// connection so it is tried first next time.
func (c *InfluxDBClient) tryServers(ctx context.Context, method, path string,
	params url.Values, body []byte) (*response, error) {

	c.urlMu.Lock()
	urls := make([]string, len(c.baseURLs))
	copy(urls, c.baseURLs)
	c.urlMu.Unlock()

	var lastErr error
	for _, baseURL := range urls {
		resp, err := c.send(ctx, method, baseURL+path, params, body)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			if c.logger != nil {
				c.logger.Error("error connecting to server", err, map[string]interface{}{
					"url": baseURL,
				})
			}
			continue
		}

		c.promoteURL(baseURL)
		return resp, nil
	}

	if lastErr == nil {
		lastErr = ErrNoServersReachable
	}
	return nil, lastErr
}

// send performs a single HTTP round trip and buffers the response.
func (c *InfluxDBClient) send(ctx context.Context, method, rawURL string,
	params url.Values, body []byte) (*response, error) {

	requestURL := rawURL
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return &response{
		status: httpResp.StatusCode,
		header: httpResp.Header,
		body:   payload,
	}, nil
}

// promoteURL moves a known-good address to the front of the list.
func (c *InfluxDBClient) promoteURL(baseURL string) {
	c.urlMu.Lock()
	defer c.urlMu.Unlock()

	if len(c.baseURLs) < 2 || c.baseURLs[0] == baseURL {
		return
	}
	for i, u := range c.baseURLs {
		if u == baseURL {
			copy(c.baseURLs[1:i+1], c.baseURLs[:i])
			c.baseURLs[0] = baseURL
			return
		}
	}
}

// isTransient reports whether an error looks like a transport failure
// that a retry might resolve.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNoServersReachable) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
