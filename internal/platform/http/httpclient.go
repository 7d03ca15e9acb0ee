// Package http builds the outbound HTTP clients used to reach the upstream service.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an http.Client for upstream calls.
//
// The transport is configured explicitly because http.DefaultClient has no timeout:
//   - Proxy honours HTTP_PROXY / HTTPS_PROXY
//   - dial and TLS handshake are bounded at 5s
//   - idle connections are pooled per host, the FastAPI service is a single host
//   - ResponseHeaderTimeout stops slow upstream handlers before the overall timeout
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout, Transport: NewTransport(timeout)}
}

// NewTransport returns the tuned transport shared by NewHTTPClient.
func NewTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
}
