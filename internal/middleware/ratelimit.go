package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles login attempts per client IP. Other
// routes pass through untouched; the upstream API is the authority for
// everything else.
type RateLimitMiddleware struct {
	loginRPM int
	mu       sync.Mutex
	clients  map[string]*clientLimiter
}

type clientLimiter struct {
	login    *rate.Limiter
	lastSeen time.Time
}

func NewRateLimitMiddleware(loginRPM int) *RateLimitMiddleware {
	if loginRPM <= 0 {
		loginRPM = 10
	}

	return &RateLimitMiddleware{
		loginRPM: loginRPM,
		clients:  map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.EqualFold(r.URL.Path, "/login") {
			next.ServeHTTP(w, r)
			return
		}

		limiter := m.getLimiter(extractClientIP(r))
		if !limiter.login.Allow() {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Muitas tentativas de login. Aguarde um minuto.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, exists := m.clients[clientIP]; exists {
		limiter.lastSeen = time.Now()
		m.gcLocked()
		return limiter
	}

	created := &clientLimiter{
		login:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.loginRPM)), m.loginRPM),
		lastSeen: time.Now(),
	}
	m.clients[clientIP] = created
	m.gcLocked()

	return created
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

func extractClientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
