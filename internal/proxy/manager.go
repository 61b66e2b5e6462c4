package proxy

import (
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
)

// Manager handles the rotation of proxies and user agents.
type Manager struct {
	proxies    []*url.URL
	userAgents []string
	mu         sync.Mutex
	proxyIndex int
}

// NewManager parses the proxy list; an entry that fails to parse is an error.
func NewManager(proxyURLs, userAgents []string) (*Manager, error) {
	m := &Manager{userAgents: userAgents}
	for _, raw := range proxyURLs {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		m.proxies = append(m.proxies, u)
	}
	return m, nil
}

// GetProxy returns a proxy URL from the list, rotating sequentially.
// It returns nil when no proxies are configured.
func (m *Manager) GetProxy() *url.URL {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.proxies) == 0 {
		return nil
	}
	p := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return p
}

// GetUserAgent returns a random user agent string.
func (m *Manager) GetUserAgent() string {
	if len(m.userAgents) == 0 {
		return ""
	}
	return m.userAgents[rand.IntN(len(m.userAgents))]
}

// ProxyFunc adapts the rotation for http.Transport.Proxy.
func (m *Manager) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(*http.Request) (*url.URL, error) {
		return m.GetProxy(), nil
	}
}
