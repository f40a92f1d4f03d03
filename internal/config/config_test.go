package config

import (
	"testing"

	"github.com/gabapcia/chainscope/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("CHAINSCOPE_ETHERSCAN_API_KEY", "key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, Config{
			EtherscanAPIKey: "key",
			EtherscanURL:    "https://api.etherscan.io/v2/api",
			SourcifyURL:     "https://repo.sourcify.dev",
			ChainID:         1,
			LogLevel:        "info",
			ServiceName:     "chainscope",
		}, cfg)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("CHAINSCOPE_ETHERSCAN_API_KEY", "key")
		t.Setenv("CHAINSCOPE_CHAIN_ID", "8453")
		t.Setenv("CHAINSCOPE_RPC_URL", "http://localhost:8545")
		t.Setenv("CHAINSCOPE_LOG_LEVEL", "debug")
		t.Setenv("CHAINSCOPE_TELEMETRY_ENABLED", "true")
		t.Setenv("CHAINSCOPE_OTLP_ENDPOINT", "collector:4317")
		t.Setenv("CHAINSCOPE_OTLP_INSECURE", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, uint64(8453), cfg.ChainID)
		assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.TelemetryEnabled)
		assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
		assert.True(t, cfg.OTLPInsecure)
	})

	t.Run("requires the api key", func(t *testing.T) {
		t.Setenv("CHAINSCOPE_ETHERSCAN_API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("CHAINSCOPE_ETHERSCAN_API_KEY", "key")
		t.Setenv("CHAINSCOPE_LOG_LEVEL", "verbose")
		t.Setenv("CHAINSCOPE_RPC_URL", "not a url")

		_, err := Load()
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Contains(t, err.Error(), "LogLevel")
		assert.Contains(t, err.Error(), "RPCURL")
	})

	t.Run("rejects a collector endpoint without a port", func(t *testing.T) {
		t.Setenv("CHAINSCOPE_ETHERSCAN_API_KEY", "key")
		t.Setenv("CHAINSCOPE_OTLP_ENDPOINT", "http://collector")

		_, err := Load()
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Contains(t, err.Error(), "OTLPEndpoint")
	})

	t.Run("rejects a non-numeric chain id", func(t *testing.T) {
		t.Setenv("CHAINSCOPE_ETHERSCAN_API_KEY", "key")
		t.Setenv("CHAINSCOPE_CHAIN_ID", "mainnet")

		_, err := Load()
		assert.Error(t, err)
	})
}
