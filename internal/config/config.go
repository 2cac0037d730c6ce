package config

import "fmt"

type Config interface {
	EnvConfig
	CorsConfig
	StorageConfig
	CollectorConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Storage
	Collector
}

// New reads the environment into a Config.
func New() (Config, error) {
	c := mainConfig{}
	if err := ParseEnv(&c.Storage); err != nil {
		return nil, fmt.Errorf("storage config: %w", err)
	}
	if err := ParseEnv(&c.Collector); err != nil {
		return nil, fmt.Errorf("collector config: %w", err)
	}
	c.Cors = NewCors(GetEnv(allowedOriginsVar, ""))
	return c, nil
}
