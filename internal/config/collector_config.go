package config

import "time"

type CollectorConfig interface {
	GetCollectorURL() string
	GetCollectorSecret() string
	GetCollectorTokenURL() string
	GetCollectorClientID() string
	GetCollectorClientSecret() string
	GetCollectorTimeout() time.Duration
}

// Collector describes the analytics endpoint identify events are sent to.
// An empty URL disables the collector.
type Collector struct {
	URL          string        `env:"COLLECTOR_URL"`
	Secret       string        `env:"COLLECTOR_SECRET"`
	TokenURL     string        `env:"COLLECTOR_TOKEN_URL"`
	ClientID     string        `env:"COLLECTOR_CLIENT_ID"`
	ClientSecret string        `env:"COLLECTOR_CLIENT_SECRET"`
	Timeout      time.Duration `env:"COLLECTOR_TIMEOUT" envDefault:"5s"`
}

var _ CollectorConfig = Collector{}

func (c Collector) GetCollectorURL() string {
	return c.URL
}

func (c Collector) GetCollectorSecret() string {
	return c.Secret
}

func (c Collector) GetCollectorTokenURL() string {
	return c.TokenURL
}

func (c Collector) GetCollectorClientID() string {
	return c.ClientID
}

func (c Collector) GetCollectorClientSecret() string {
	return c.ClientSecret
}

func (c Collector) GetCollectorTimeout() time.Duration {
	return c.Timeout
}
