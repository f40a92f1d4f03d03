// Package config loads the runtime configuration of chainscope from the
// environment. Every variable is prefixed with CHAINSCOPE_.
package config

import (
	"fmt"

	"github.com/gabapcia/chainscope/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// prefix is prepended, with an underscore, to every variable name.
const prefix = "chainscope"

// Config holds the settings needed to build the explorer service.
type Config struct {
	EtherscanAPIKey string `envconfig:"ETHERSCAN_API_KEY" required:"true" validate:"required"`
	EtherscanURL    string `envconfig:"ETHERSCAN_URL" default:"https://api.etherscan.io/v2/api" validate:"required,url"`
	SourcifyURL     string `envconfig:"SOURCIFY_URL" default:"https://repo.sourcify.dev" validate:"required,url"`
	ChainID         uint64 `envconfig:"CHAIN_ID" default:"1" validate:"gte=1"`

	// RPCURL, when set, routes contract calls to a JSON-RPC node instead of
	// the explorer's proxy module.
	RPCURL string `envconfig:"RPC_URL" validate:"omitempty,url"`

	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"chainscope" validate:"required"`

	// OTLPEndpoint is the host:port of the collector. Empty leaves the
	// exporters on OTEL_EXPORTER_OTLP_ENDPOINT or their built-in default.
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT" validate:"omitempty,hostname_port"`
	OTLPInsecure bool   `envconfig:"OTLP_INSECURE" default:"false"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
