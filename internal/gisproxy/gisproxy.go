// Package gisproxy forwards parcel-lookup requests to municipal GIS
// services. The browser cannot call those services directly, so the site
// proxies them behind a strict host allow list.
package gisproxy

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gdlandscaping/sitegen/internal/logger"
)

// Proxy forwards allow-listed GIS requests.
type Proxy struct {
	allowed map[string]bool
	client  *http.Client
	log     logger.Logger
}

type config struct {
	client *http.Client
	log    logger.Logger
}

// Option customizes a Proxy.
type Option func(*config)

// WithHTTPClient overrides the outbound client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithLogger injects a logger.
func WithLogger(log logger.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// New returns a Proxy allowing requests to the given hosts only. Host
// comparison is case-insensitive and ignores ports.
func New(allowedHosts []string, options ...Option) *Proxy {
	cfg := config{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger.NewNop(),
	}
	for _, option := range options {
		option(&cfg)
	}

	allowed := make(map[string]bool, len(allowedHosts))
	for _, host := range allowedHosts {
		allowed[strings.ToLower(host)] = true
	}
	return &Proxy{allowed: allowed, client: cfg.client, log: cfg.log}
}

// Allowed reports whether target's host is on the allow list. Called before
// any outbound request is made.
func (p *Proxy) Allowed(target *url.URL) bool {
	return p.allowed[strings.ToLower(target.Hostname())]
}

// Handle is the gin handler for GET /api/gis?url=<target>.
func (p *Proxy) Handle(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url parameter", "status": http.StatusBadRequest})
		return
	}

	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url parameter", "status": http.StatusBadRequest})
		return
	}

	if !p.Allowed(target) {
		p.log.Warn("gis proxy refused host", logger.String("host", target.Hostname()))
		c.JSON(http.StatusForbidden, gin.H{"error": "host not allowed", "status": http.StatusForbidden})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url parameter", "status": http.StatusBadRequest})
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("gis upstream call failed",
			logger.String("host", target.Hostname()),
			logger.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed", "status": http.StatusBadGateway})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Status(resp.StatusCode)
	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		p.log.Error("gis response copy failed", logger.Error(err))
	}
}
