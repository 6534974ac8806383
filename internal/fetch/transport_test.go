package fetch

import "testing"

func TestProxyConfigUsingProxyDirect(t *testing.T) {
	cfg := ProxyConfig{}
	using, label := cfg.UsingProxy()
	if using {
		t.Error("expected no proxy for an empty config")
	}
	if label != "direct" {
		t.Errorf("expected label %q, got %q", "direct", label)
	}
}

func TestProxyConfigUsingProxySocks(t *testing.T) {
	cfg := ProxyConfig{SocksAddr: "127.0.0.1:9050"}
	using, label := cfg.UsingProxy()
	if !using {
		t.Error("expected proxy to be in use")
	}
	if label != "socks5:127.0.0.1:9050" {
		t.Errorf("unexpected label %q", label)
	}
}

func TestNewHTTPTransportDirect(t *testing.T) {
	tr, err := NewHTTPTransport(ProxyConfig{}, 0)
	if err != nil {
		t.Fatalf("unexpected error building direct transport: %v", err)
	}
	if tr == nil {
		t.Fatal("expected a non-nil transport")
	}
}

func TestNewHTTPTransportSocks(t *testing.T) {
	tr, err := NewHTTPTransport(ProxyConfig{SocksAddr: "127.0.0.1:9050"}, 0)
	if err != nil {
		t.Fatalf("unexpected error building SOCKS5 transport: %v", err)
	}
	if tr == nil {
		t.Fatal("expected a non-nil transport")
	}
}

func TestNewHTTPTransportInvalidHTTPProxy(t *testing.T) {
	_, err := NewHTTPTransport(ProxyConfig{HTTPAddr: "://not-a-url"}, 0)
	if err == nil {
		t.Fatal("expected an error for an invalid proxy URL")
	}
}
