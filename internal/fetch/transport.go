package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// TransportPort is the seam between the fetch/retry logic and the actual
// network stack, so tests can substitute a fake transport.
type TransportPort interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProxyConfig configures optional Tor/SOCKS or plain HTTP proxying for the
// underlying transport.
type ProxyConfig struct {
	SocksAddr string
	HTTPAddr  string
}

// HTTPTransport is the default TransportPort, a *http.Client configured
// with a sensible timeout and, optionally, a SOCKS5 or HTTP proxy dialer.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport builds an HTTPTransport. When cfg.SocksAddr is set, all
// connections are dialed through a SOCKS5 proxy (e.g. a local Tor
// instance); otherwise when cfg.HTTPAddr is set, requests are proxied via a
// standard HTTP(S) proxy. With neither set, direct connections are used.
func NewHTTPTransport(cfg ProxyConfig, timeout time.Duration) (*HTTPTransport, error) {
	base := &http.Transport{}

	switch {
	case cfg.SocksAddr != "":
		dialer, err := proxy.SOCKS5("tcp", cfg.SocksAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("fetch: configuring SOCKS5 proxy: %w", err)
		}
		contextDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("fetch: SOCKS5 dialer does not support context")
		}
		base.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return contextDialer.DialContext(ctx, network, addr)
		}
	case cfg.HTTPAddr != "":
		proxyURL, err := url.Parse(cfg.HTTPAddr)
		if err != nil {
			return nil, fmt.Errorf("fetch: parsing HTTP proxy address: %w", err)
		}
		base.Proxy = http.ProxyURL(proxyURL)
	}

	return &HTTPTransport{
		client: &http.Client{
			Transport: base,
			Timeout:   timeout,
		},
	}, nil
}

// Do implements TransportPort.
func (t *HTTPTransport) Do(req *http.Request) (*http.Response, error) {
	return t.client.Do(req)
}

// UsingProxy reports whether cfg configures any proxying at all, and a
// short label describing which kind, for logging.
func (cfg ProxyConfig) UsingProxy() (bool, string) {
	switch {
	case cfg.SocksAddr != "":
		return true, "socks5:" + cfg.SocksAddr
	case cfg.HTTPAddr != "":
		return true, "http:" + cfg.HTTPAddr
	default:
		return false, "direct"
	}
}
