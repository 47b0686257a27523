package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/imodoiepale/kra-invoice-api/internal/config"
	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/sirupsen/logrus"
)

// ProbeService performs a lightweight reachability check against the
// verification endpoint root. The check is advisory only: it never gates a
// verification run and a caller may skip it entirely.
type ProbeService struct {
	config config.KRAConfig
	client *http.Client
	logger *logrus.Logger
}

// NewProbeService creates a new probe service
func NewProbeService(cfg config.KRAConfig, logger *logrus.Logger) ProbeServiceInterface {
	return &ProbeService{
		config: cfg,
		client: &http.Client{Timeout: cfg.ProbeTimeout},
		logger: logger,
	}
}

// Probe issues a GET against the conventional introspection path on the
// endpoint root. A 2xx response marks the endpoint reachable; any other
// status or transport failure marks it unreachable with a descriptive detail.
func (s *ProbeService) Probe(ctx context.Context) models.EndpointHealth {
	health := models.EndpointHealth{CheckedAt: time.Now()}

	probeURL, err := s.probeURL()
	if err != nil {
		health.Detail = fmt.Sprintf("invalid endpoint URL: %v", err)
		return health
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.config.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, probeURL, nil)
	if err != nil {
		health.Detail = fmt.Sprintf("failed to build probe request: %v", err)
		return health
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).WithField("url", probeURL).Debug("Endpoint probe failed")
		health.Detail = fmt.Sprintf("endpoint unreachable: %v", err)
		return health
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		health.Reachable = true
		health.Detail = fmt.Sprintf("endpoint responded with status %d", resp.StatusCode)
	} else {
		health.Detail = fmt.Sprintf("endpoint responded with unexpected status %d", resp.StatusCode)
	}

	return health
}

// probeURL derives the root URL by stripping the verification sub-path and
// appending the configured introspection path.
func (s *ProbeService) probeURL() (string, error) {
	parsed, err := url.Parse(s.config.Endpoint)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("endpoint %q has no scheme or host", s.config.Endpoint)
	}

	root := parsed.Scheme + "://" + parsed.Host
	return root + "/" + strings.TrimPrefix(s.config.ProbePath, "/"), nil
}
