package sources

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/proxy"
)

// ProxyPool rotates outbound reddit requests over a set of SOCKS5 proxies
// so a single blocked exit address does not take fetching down. Requests
// are on-demand here, so Next never blocks: when every proxy is cooling
// down it hands out the next one anyway and lets the caller fail fast.
type ProxyPool struct {
	clients    []*http.Client
	hosts      []string
	index      atomic.Uint64
	cooldowns  map[int]time.Time
	successes  map[int]int
	failures   map[int]int
	cooldownMu sync.RWMutex
}

const rateLimitCooldown = 30 * time.Second

func NewProxyPool(proxyURLs []string) (*ProxyPool, error) {
	if len(proxyURLs) == 0 {
		return nil, errors.New("no proxy URLs provided")
	}

	clients := make([]*http.Client, 0, len(proxyURLs))
	hosts := make([]string, 0, len(proxyURLs))
	seen := make(map[string]bool)

	for _, proxyURL := range proxyURLs {
		if seen[proxyURL] {
			continue
		}
		seen[proxyURL] = true

		client, err := NewProxiedClient(proxyURL)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)

		if parsed, err := url.Parse(proxyURL); err == nil {
			hosts = append(hosts, parsed.Host)
		} else {
			hosts = append(hosts, "unknown")
		}
	}

	slog.Info("proxy pool created", "count", len(clients), "hosts", hosts)

	return &ProxyPool{
		clients:   clients,
		hosts:     hosts,
		cooldowns: make(map[int]time.Time),
		successes: make(map[int]int),
		failures:  make(map[int]int),
	}, nil
}

// NewProxiedClient builds an HTTP client routed through a SOCKS5 proxy.
// An empty or non-socks5 URL yields a plain client.
func NewProxiedClient(proxyURL string) (*http.Client, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	if proxyURL == "" {
		return client, nil
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}
	if parsedURL.Scheme != "socks5" {
		return client, nil
	}

	var auth *proxy.Auth
	if parsedURL.User != nil {
		password, _ := parsedURL.User.Password()
		auth = &proxy.Auth{
			User:     parsedURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}

	return client, nil
}

// Next returns the next usable client and its proxy host. Proxies on rate
// limit cooldown are skipped when an alternative exists.
func (p *ProxyPool) Next() (*http.Client, string) {
	n := len(p.clients)

	p.cooldownMu.RLock()
	defer p.cooldownMu.RUnlock()

	now := time.Now()
	var fallback int
	for attempt := 0; attempt < n; attempt++ {
		i := int((p.index.Add(1) - 1) % uint64(n))
		fallback = i

		if cooldownUntil, ok := p.cooldowns[i]; ok && now.Before(cooldownUntil) {
			continue
		}
		return p.clients[i], p.hosts[i]
	}

	return p.clients[fallback], p.hosts[fallback]
}

// MarkRateLimited puts a proxy on cooldown after a 429.
func (p *ProxyPool) MarkRateLimited(host string) {
	p.cooldownMu.Lock()
	defer p.cooldownMu.Unlock()

	for i, h := range p.hosts {
		if h == host {
			p.cooldowns[i] = time.Now().Add(rateLimitCooldown)
			slog.Debug("proxy on cooldown", "host", host, "duration_seconds", rateLimitCooldown.Seconds())
			return
		}
	}
}

func (p *ProxyPool) MarkSuccess(host string) {
	p.cooldownMu.Lock()
	defer p.cooldownMu.Unlock()

	for i, h := range p.hosts {
		if h == host {
			p.successes[i]++
			return
		}
	}
}

func (p *ProxyPool) MarkFailure(host string) {
	p.cooldownMu.Lock()
	defer p.cooldownMu.Unlock()

	for i, h := range p.hosts {
		if h == host {
			p.failures[i]++
			return
		}
	}
}

// Stats returns success and failure counts per proxy host.
func (p *ProxyPool) Stats() map[string]struct{ Successes, Failures int } {
	p.cooldownMu.RLock()
	defer p.cooldownMu.RUnlock()

	stats := make(map[string]struct{ Successes, Failures int })
	for i, h := range p.hosts {
		stats[h] = struct{ Successes, Failures int }{
			Successes: p.successes[i],
			Failures:  p.failures[i],
		}
	}
	return stats
}
