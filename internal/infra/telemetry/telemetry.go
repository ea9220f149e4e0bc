package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gutscas/santo-dashboard/internal/infra/config"
)

// Provider represents a telemetry provider handle.
type Provider struct {
	serviceInfo prometheus.Gauge
}

// Attach registers process-level collectors and returns a provider handle.
// Request-scoped metrics live in the HTTP middleware.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	info := promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "accounts",
		Name:      "service_info",
		Help:      "Static service metadata, value is always 1.",
		ConstLabels: prometheus.Labels{
			"service": cfg.Telemetry.ServiceName,
			"env":     cfg.App.Env,
		},
	})
	info.Set(1)

	return &Provider{
		serviceInfo: info,
	}, nil
}

// ServiceInfo exposes the static service metadata gauge.
func (p *Provider) ServiceInfo() prometheus.Gauge {
	if p == nil {
		return prometheus.NewGauge(prometheus.GaugeOpts{})
	}
	return p.serviceInfo
}
