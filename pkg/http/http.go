// Package http is the HTTP client the fetcher streams downloads through.
package http

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/NamanBalaji/etaprogress/internal/logger"
)

const (
	defaultConnectTimeout = 30 * time.Second
	defaultIdleTimeout    = 90 * time.Second
	keepAlivePeriod       = 30 * time.Second
	responseHeaderTimeout = 30 * time.Second
	maxIdleConns          = 10
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 1 * time.Second

	DefaultUserAgent = "etaprogress/1.0"

	defaultDownloadName = "index.html"
)

type Client struct {
	*http.Client
	userAgent string
}

type clientSettings struct {
	userAgent     string
	headerTimeout time.Duration
}

// ClientOption configures NewClient.
type ClientOption func(*clientSettings)

// WithUserAgent replaces DefaultUserAgent.
func WithUserAgent(ua string) ClientOption {
	return func(s *clientSettings) { s.userAgent = ua }
}

// WithHeaderTimeout bounds the wait for response headers.
func WithHeaderTimeout(d time.Duration) ClientOption {
	return func(s *clientSettings) { s.headerTimeout = d }
}

// NewClient creates a new HTTP client with custom transport settings. The
// transport bounds connecting and waiting for headers; reading the body is
// bounded only by the request context.
func NewClient(opts ...ClientOption) *Client {
	s := clientSettings{userAgent: DefaultUserAgent, headerTimeout: responseHeaderTimeout}
	for _, opt := range opts {
		opt(&s)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaultConnectTimeout,
			KeepAlive: keepAlivePeriod,
		}).DialContext,
		MaxIdleConns:          maxIdleConns,
		IdleConnTimeout:       defaultIdleTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: s.headerTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
		DisableCompression:    true,
	}

	return &Client{
		Client:    &http.Client{Transport: transport},
		userAgent: s.userAgent,
	}
}

// Get performs a GET request to the specified URL. The caller must close the
// response body.
func (c *Client) Get(ctx context.Context, urlStr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		logger.Errorf("Failed to create GET request for %s: %v", urlStr, err)
		return nil, fmt.Errorf("%w: %w", ErrRequestCreation, err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	logger.Debugf("Sending GET request to %s", urlStr)

	resp, err := c.Do(req)
	if err != nil {
		logger.Errorf("GET request failed for %s: %v", urlStr, err)
		return nil, ClassifyError(err)
	}

	logger.Debugf("GET response for %s: status=%d length=%d", urlStr, resp.StatusCode, resp.ContentLength)

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Errorf("GET request returned error status %d for %s", resp.StatusCode, urlStr)
		_ = resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: urlStr, Err: ClassifyHTTPError(resp.StatusCode)}
	}

	return resp, nil
}

// ContentLength returns the announced body size. ok is false when the server
// did not send a usable Content-Length.
func ContentLength(resp *http.Response) (int64, bool) {
	if resp.ContentLength > 0 {
		return resp.ContentLength, true
	}

	n, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// GetFilename extracts the filename from the Content-Disposition header or the URL.
func GetFilename(resp *http.Response) string {
	fileName, ok := getFileNameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if ok {
		return fileName
	}

	u := resp.Request.URL
	if qname := u.Query().Get("filename"); qname != "" {
		return qname
	}

	base := path.Base(u.Path)
	if base != "" && base != "/" && base != "." {
		return base
	}

	return defaultDownloadName
}

func getFileNameFromContentDisposition(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	if _, params, err := mime.ParseMediaType(header); err == nil {
		if fName, ok := params["filename"]; ok {
			return fName, true
		}
	}

	return "", false
}
